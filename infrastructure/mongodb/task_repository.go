package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) repositories.TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := r.coll.InsertOne(ctx, newTaskDocument(task))
	return translateError(err)
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	return doc.toModel(), nil
}

// participantFilter matches tasks the user created or is assigned to.
func participantFilter(userID uuid.UUID) bson.M {
	uid := userID.String()
	return bson.M{"$or": bson.A{
		bson.M{"creatorId": uid},
		bson.M{"assignedUsers": uid},
	}}
}

func (r *TaskRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, filter models.TaskFilter) ([]*models.Task, error) {
	query := participantFilter(userID)
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.GroupSlug != "" {
		query["assignment.groupSlug"] = filter.GroupSlug
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}
	tasks := make([]*models.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toModel())
	}
	return tasks, nil
}

func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, update models.TaskFieldsUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.Timeline != nil {
		set["timeline"] = *update.Timeline
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	return r.set(ctx, id, set)
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TaskStatus) error {
	return r.set(ctx, id, bson.M{"status": string(status), "updatedAt": time.Now().UTC()})
}

func (r *TaskRepository) set(ctx context.Context, id uuid.UUID, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": fields})
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translateError(err)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) CountForUser(ctx context.Context, userID uuid.UUID) (models.TaskCounts, error) {
	uid := userID.String()
	var counts models.TaskCounts

	created, err := r.coll.CountDocuments(ctx, bson.M{"creatorId": uid})
	if err != nil {
		return counts, translateError(err)
	}
	assigned, err := r.coll.CountDocuments(ctx, bson.M{
		"creatorId":     bson.M{"$ne": uid},
		"assignedUsers": uid,
	})
	if err != nil {
		return counts, translateError(err)
	}

	counts.Created = created
	counts.Assigned = assigned
	return counts, nil
}
