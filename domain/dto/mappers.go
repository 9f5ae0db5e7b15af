package dto

import (
	"github.com/google/uuid"

	"taskhub/domain/models"
)

const (
	UserRoleCreator  = "creator"
	UserRoleAssigned = "assigned"
)

func UserToSummary(user *models.User) UserSummary {
	return UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
}

func UsersToSummaries(users []*models.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserToSummary(u))
	}
	return out
}

func UserToProfileResponse(user *models.User, counts models.TaskCounts) *ProfileResponse {
	if user == nil {
		return nil
	}
	return &ProfileResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		CreatedTasksCount:  counts.Created,
		AssignedTasksCount: counts.Assigned,
		TotalTasksCount:    counts.Total(),
		CreatedAt:          user.CreatedAt,
	}
}

func (r *CreateIndividualTaskRequest) ToDetails() models.TaskDetails {
	return models.TaskDetails{
		Title:       r.Title,
		Description: r.Description,
		Priority:    models.TaskPriority(r.Priority),
		DueDate:     r.DueDate.UTC(),
		Timeline:    r.Timeline,
		Notes:       r.Notes,
	}
}

func (r *UpdateTaskRequest) ToFieldsUpdate() models.TaskFieldsUpdate {
	update := models.TaskFieldsUpdate{Timeline: r.Timeline, Notes: r.Notes}
	if r.DueDate != nil {
		due := r.DueDate.UTC()
		update.DueDate = &due
	}
	return update
}

func (r *TaskFilterRequest) ToFilter() models.TaskFilter {
	filter := models.TaskFilter{Status: models.TaskStatus(r.Status)}
	if r.Group != "" {
		filter.GroupSlug = models.GroupSlug(r.Group)
	}
	return filter
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	assigned := task.AssignedUsers()
	if assigned == nil {
		assigned = []uuid.UUID{}
	}
	resp := &TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      string(task.Priority),
		DueDate:       task.DueDate,
		Timeline:      task.Timeline,
		Notes:         task.Notes,
		Status:        string(task.Status),
		Role:          string(task.Role()),
		CreatedBy:     task.CreatorID,
		AssignedUsers: assigned,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
	if task.Assignment != nil {
		resp.GroupName = task.Assignment.GroupName
		resp.GroupSlug = task.Assignment.GroupSlug
	}
	return resp
}

// TaskToListItem builds the caller's view of task. users must contain the
// creator and assignees that still exist; missing ones are left out.
func TaskToListItem(task *models.Task, callerID uuid.UUID, users map[uuid.UUID]*models.User) TaskListItem {
	item := TaskListItem{
		TaskResponse: *TaskToTaskResponse(task),
		UserRole:     UserRoleAssigned,
		Assignees:    []UserSummary{},
	}
	if task.IsCreator(callerID) {
		item.UserRole = UserRoleCreator
	}
	if creator, ok := users[task.CreatorID]; ok {
		item.CreatorName = creator.Name
		item.CreatorEmail = creator.Email
	}
	for _, id := range task.AssignedUsers() {
		if u, ok := users[id]; ok {
			item.Assignees = append(item.Assignees, UserToSummary(u))
		}
	}
	return item
}

func TaskToFieldsResponse(task *models.Task) *TaskFieldsResponse {
	return &TaskFieldsResponse{
		ID:       task.ID,
		DueDate:  task.DueDate,
		Timeline: task.Timeline,
		Notes:    task.Notes,
	}
}

// NotificationToResponse resolves titles and names; a deleted task or user yields "".
func NotificationToResponse(n *models.Notification, task *models.Task, member *models.User) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		TaskID:    n.TaskID,
		MemberID:  n.MemberID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if task != nil {
		resp.TaskTitle = task.Title
	}
	if member != nil {
		resp.MemberName = member.Name
	}
	return resp
}
