package serviceimpl

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/policy"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/pkg/apperror"
	"taskhub/pkg/logger"
)

const (
	msgTaskNotFound = "Task not found"
	msgUserNotFound = "User not found"
)

type TaskServiceImpl struct {
	taskRepo      repositories.TaskRepository
	userRepo      repositories.UserRepository
	tx            ports.Transactor
	notifications services.NotificationService
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	tx ports.Transactor,
	notifications services.NotificationService,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		tx:            tx,
		notifications: notifications,
	}
}

func (s *TaskServiceImpl) CreateIndividualTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateIndividualTaskRequest) (*models.Task, error) {
	trimTaskDetails(req)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}

	task := models.NewIndividualTask(callerID, req.ToDetails())

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByID(ctx, callerID); err != nil {
			return storeError(ctx, "users.GetByID", err, msgUserNotFound)
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return storeError(ctx, "tasks.Create", err, "")
		}
		if err := s.userRepo.AddTaskRef(ctx, callerID, task.ID); err != nil {
			return storeError(ctx, "users.AddTaskRef", err, msgUserNotFound)
		}
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "Individual task creation failed", "user_id", callerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", callerID, "role", task.Role())
	return task, nil
}

func (s *TaskServiceImpl) CreateAdminTask(ctx context.Context, callerID uuid.UUID, req *dto.CreateAdminTaskRequest) (*models.Task, error) {
	trimTaskDetails(&req.CreateIndividualTaskRequest)
	req.GroupName = strings.TrimSpace(req.GroupName)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}

	requested := make([]uuid.UUID, 0, len(req.AssignedUsers))
	for _, raw := range req.AssignedUsers {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.Validation("Validation failed", map[string]string{"assignedUsers": "must contain valid ids"})
		}
		requested = append(requested, id)
	}
	requested = models.UniqueIDs(requested)

	var task *models.Task
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByID(ctx, callerID); err != nil {
			return storeError(ctx, "users.GetByID", err, msgUserNotFound)
		}

		found, err := s.userRepo.GetByIDs(ctx, requested)
		if err != nil {
			return storeError(ctx, "users.GetByIDs", err, "")
		}
		members := make([]uuid.UUID, 0, len(found))
		for _, u := range found {
			members = append(members, u.ID)
		}
		if skipped := len(requested) - len(members); skipped > 0 {
			logger.WarnContext(ctx, "Skipping unknown assignees", "requested", len(requested), "skipped", skipped)
		}

		task, err = models.NewAdminTask(callerID, req.ToDetails(), req.GroupName, members)
		switch {
		case errors.Is(err, models.ErrNoAssignees):
			return apperror.Validation("None of the assigned users exist", map[string]string{"assignedUsers": err.Error()})
		case err != nil:
			return apperror.Validation("Validation failed", map[string]string{"groupName": err.Error()})
		}

		if err := s.taskRepo.Create(ctx, task); err != nil {
			return storeError(ctx, "tasks.Create", err, "")
		}
		for _, holder := range task.ReferenceHolders() {
			if err := s.userRepo.AddTaskRef(ctx, holder, task.ID); err != nil {
				return storeError(ctx, "users.AddTaskRef", err, msgUserNotFound)
			}
		}
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "Admin task creation failed", "user_id", callerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created",
		"task_id", task.ID,
		"user_id", callerID,
		"role", task.Role(),
		"group", task.Assignment.GroupSlug,
		"assignees", len(task.Assignment.Members),
	)
	return task, nil
}

func (s *TaskServiceImpl) ListTasksForUser(ctx context.Context, callerID uuid.UUID, req *dto.TaskFilterRequest) ([]dto.TaskListItem, error) {
	req.Group = strings.TrimSpace(req.Group)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}
	// A group with nothing to slugify would otherwise drop the filter entirely.
	if req.Group != "" && models.GroupSlug(req.Group) == "" {
		return nil, apperror.Validation("Validation failed", map[string]string{"group": models.ErrInvalidGroupName.Error()})
	}

	tasks, err := s.taskRepo.ListByParticipant(ctx, callerID, req.ToFilter())
	if err != nil {
		return nil, storeError(ctx, "tasks.ListByParticipant", err, "")
	}

	var ids []uuid.UUID
	for _, t := range tasks {
		ids = append(ids, t.CreatorID)
		ids = append(ids, t.AssignedUsers()...)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(ctx, "users.GetByIDs", err, "")
	}
	byID := make(map[uuid.UUID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	items := make([]dto.TaskListItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, dto.TaskToListItem(t, callerID, byID))
	}
	return items, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, storeError(ctx, "tasks.GetByID", err, msgTaskNotFound)
	}
	if err := policy.CanViewTask(task, callerID); err != nil {
		logger.WarnContext(ctx, "Task access denied", "task_id", taskID, "user_id", callerID)
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) UpdateTaskFields(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}
	update, err := normalizeFieldsUpdate(req)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, storeError(ctx, "tasks.GetByID", err, msgTaskNotFound)
	}
	if err := policy.CanEditTaskFields(task, callerID); err != nil {
		logger.WarnContext(ctx, "Task update denied", "task_id", taskID, "user_id", callerID)
		return nil, err
	}

	if err := s.taskRepo.UpdateFields(ctx, taskID, update); err != nil {
		return nil, storeError(ctx, "tasks.UpdateFields", err, msgTaskNotFound)
	}
	task.ApplyFields(update)

	logger.InfoContext(ctx, "Task fields updated", "task_id", taskID, "user_id", callerID)
	return task, nil
}

func (s *TaskServiceImpl) UpdateTaskStatus(ctx context.Context, callerID, taskID uuid.UUID, req *dto.UpdateTaskStatusRequest) (*models.Task, error) {
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}
	status := models.TaskStatus(req.Status)

	var (
		task         *models.Task
		notification *models.Notification
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		task, err = s.taskRepo.GetByID(ctx, taskID)
		if err != nil {
			return storeError(ctx, "tasks.GetByID", err, msgTaskNotFound)
		}
		if err := policy.CanChangeTaskStatus(task, callerID); err != nil {
			return err
		}

		if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
			return storeError(ctx, "tasks.UpdateStatus", err, msgTaskNotFound)
		}
		task.Status = status

		if !policy.ShouldNotifyCompletion(task, status, callerID) {
			return nil
		}
		notification, err = s.notifications.NotifyTaskCompleted(ctx, task, callerID)
		return err
	})
	if err != nil {
		logger.WarnContext(ctx, "Task status update failed", "task_id", taskID, "user_id", callerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task status updated", "task_id", taskID, "user_id", callerID, "status", status)

	if notification != nil {
		s.notifications.Publish(ctx, notification, task)
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return storeError(ctx, "tasks.GetByID", err, msgTaskNotFound)
	}
	if err := policy.CanDeleteTask(task, callerID); err != nil {
		logger.WarnContext(ctx, "Task deletion denied", "task_id", taskID, "user_id", callerID)
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Delete(ctx, taskID); err != nil {
			return storeError(ctx, "tasks.Delete", err, msgTaskNotFound)
		}
		if err := s.userRepo.RemoveTaskRef(ctx, taskID); err != nil {
			return storeError(ctx, "users.RemoveTaskRef", err, "")
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", callerID)
	return nil
}

func trimTaskDetails(req *dto.CreateIndividualTaskRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Timeline = strings.TrimSpace(req.Timeline)
	req.Notes = strings.TrimSpace(req.Notes)
}

// normalizeFieldsUpdate treats "" as absent and rejects whitespace-only values.
func normalizeFieldsUpdate(req *dto.UpdateTaskRequest) (models.TaskFieldsUpdate, error) {
	details := map[string]string{}
	clean := func(name string, v *string) *string {
		if v == nil || *v == "" {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			details[name] = "must not be blank"
			return nil
		}
		return &trimmed
	}
	req.Timeline = clean("timeline", req.Timeline)
	req.Notes = clean("notes", req.Notes)
	if req.DueDate != nil && req.DueDate.IsZero() {
		req.DueDate = nil
	}

	if len(details) > 0 {
		return models.TaskFieldsUpdate{}, apperror.Validation("Validation failed", details)
	}
	update := req.ToFieldsUpdate()
	if update.IsEmpty() {
		return update, apperror.Validation("No valid fields provided for update", nil)
	}
	return update, nil
}
