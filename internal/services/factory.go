package services

import (
	"family-finance-api/internal/repositories"
)

// ServiceContainer bundles all services for dependency injection
type ServiceContainer struct {
	FamilyService       FamilyService
	LedgerService       LedgerService
	TaskService         TaskService
	GiftService         GiftService
	NotificationService NotificationService
}

// NewServiceContainer wires all services over one repository container
func NewServiceContainer(repos *repositories.RepositoryContainer) *ServiceContainer {
	return &ServiceContainer{
		FamilyService:       NewFamilyService(repos.ParentRepo, repos.ChildRepo, repos.LedgerRepo),
		LedgerService:       NewLedgerService(repos.ChildRepo, repos.LedgerRepo, repos.NotificationRepo),
		TaskService:         NewTaskService(repos.TaskRepo, repos.ChildRepo, repos.LedgerRepo, repos.NotificationRepo),
		GiftService:         NewGiftService(repos.GiftRepo, repos.ChildRepo, repos.LedgerRepo, repos.NotificationRepo),
		NotificationService: NewNotificationService(repos.NotificationRepo),
	}
}
