package handlers

import (
	"taskhub/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService         services.UserService
	TaskService         services.TaskService
	NotificationService services.NotificationService
	HealthChecks        map[string]HealthCheck
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	TaskHandler         *TaskHandler
	NotificationHandler *NotificationHandler
	HealthHandler       *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:         NewAuthHandler(services.UserService),
		UserHandler:         NewUserHandler(services.UserService),
		TaskHandler:         NewTaskHandler(services.TaskService),
		NotificationHandler: NewNotificationHandler(services.NotificationService),
		HealthHandler:       NewHealthHandler(services.HealthChecks),
	}
}
