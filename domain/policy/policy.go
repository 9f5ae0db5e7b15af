// Package policy decides which caller may read or change which task, notification
// or profile. Every check returns nil when allowed and a Forbidden apperror otherwise,
// so services can return the result directly before touching the store.
package policy

import (
	"github.com/google/uuid"

	"taskhub/domain/models"
	"taskhub/pkg/apperror"
)

func CanViewTask(task *models.Task, callerID uuid.UUID) error {
	if task.IsParticipant(callerID) {
		return nil
	}
	return apperror.Forbidden("You are not allowed to view this task.")
}

func CanEditTaskFields(task *models.Task, callerID uuid.UUID) error {
	if task.IsParticipant(callerID) {
		return nil
	}
	return apperror.Forbidden("You are not allowed to update this task.")
}

func CanChangeTaskStatus(task *models.Task, callerID uuid.UUID) error {
	if task.IsParticipant(callerID) {
		return nil
	}
	return apperror.Forbidden("Not authorized to update this task")
}

// CanDeleteTask allows only the creator.
func CanDeleteTask(task *models.Task, callerID uuid.UUID) error {
	if task.IsCreator(callerID) {
		return nil
	}
	return apperror.Forbidden("You are not allowed to delete this task.")
}

// ShouldNotifyCompletion is the single trigger for notification creation:
// an assignee other than the creator moves an admin-assigned task to done.
func ShouldNotifyCompletion(task *models.Task, newStatus models.TaskStatus, callerID uuid.UUID) bool {
	return newStatus == models.TaskStatusDone &&
		task.IsAdminAssigned() &&
		!task.IsCreator(callerID)
}

func CanReadNotification(n *models.Notification, callerID uuid.UUID) error {
	if n.AdminID == callerID {
		return nil
	}
	return apperror.Forbidden("Not authorized to update this notification.")
}

func CanDeleteNotification(n *models.Notification, callerID uuid.UUID) error {
	if n.AdminID == callerID {
		return nil
	}
	return apperror.Forbidden("Not authorized to delete this notification.")
}

func CanEditProfile(profileID, callerID uuid.UUID) error {
	if profileID == callerID {
		return nil
	}
	return apperror.Forbidden("You can only update your own profile.")
}
