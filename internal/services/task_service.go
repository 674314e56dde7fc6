package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// taskService implements the TaskService interface
type taskService struct {
	taskRepo         repositories.TaskRepository
	childRepo        repositories.ChildRepository
	ledgerRepo       repositories.LedgerRepository
	notificationRepo repositories.NotificationRepository
	validator        *validator.Validate
}

// NewTaskService creates a new task service instance
func NewTaskService(taskRepo repositories.TaskRepository, childRepo repositories.ChildRepository, ledgerRepo repositories.LedgerRepository, notificationRepo repositories.NotificationRepository) TaskService {
	return &taskService{
		taskRepo:         taskRepo,
		childRepo:        childRepo,
		ledgerRepo:       ledgerRepo,
		notificationRepo: notificationRepo,
		validator:        validator.New(),
	}
}

// CreateTask assigns a new chore to a child
func (s *taskService) CreateTask(ctx context.Context, familyID string, req *CreateTaskRequest) (*models.Task, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: create task request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	child, err := s.childRepo.GetByID(ctx, req.ChildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.FamilyID != familyID {
		return nil, repositories.NotFoundError("child", req.ChildID)
	}

	task := models.NewTask(familyID, req.ChildID, req.Title, req.RewardCents, req.CreatedBy)
	task.Description = req.Description
	task.DueDate = req.DueDate

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// GetTask retrieves a task within the family
func (s *taskService) GetTask(ctx context.Context, familyID, id string) (*models.Task, error) {
	if err := validateUUID(id, "task ID"); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.FamilyID != familyID {
		return nil, repositories.NotFoundError("task", id)
	}
	return task, nil
}

// ListTasks lists the family's tasks, optionally filtered by status
func (s *taskService) ListTasks(ctx context.Context, familyID string, status models.TaskStatus) ([]*models.Task, error) {
	tasks, err := s.taskRepo.ListByFamily(ctx, familyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask updates a pending task's details
func (s *taskService) UpdateTask(ctx context.Context, familyID, id string, req *UpdateTaskRequest) (*models.Task, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: update task request cannot be nil", ErrValidation)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	task, err := s.GetTask(ctx, familyID, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, fmt.Errorf("%w: only pending tasks can be edited", ErrInvalidState)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.RewardCents != nil {
		task.RewardCents = *req.RewardCents
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = nowFunc()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task. Approved tasks stay for the audit trail.
func (s *taskService) DeleteTask(ctx context.Context, familyID, id string) error {
	task, err := s.GetTask(ctx, familyID, id)
	if err != nil {
		return err
	}
	if task.Status == models.TaskStatusApproved {
		return fmt.Errorf("%w: approved tasks cannot be deleted", ErrInvalidState)
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CompleteTask marks a pending task completed and notifies the parent who
// assigned it
func (s *taskService) CompleteTask(ctx context.Context, familyID, id, completedBy string) (*models.Task, error) {
	task, err := s.GetTask(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if err := task.MarkCompleted(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	notification := models.NewNotification(familyID, task.CreatedBy, models.NotificationTaskCompleted,
		fmt.Sprintf("Task %q was marked completed", task.Title))
	_ = s.notificationRepo.Create(ctx, notification)

	return task, nil
}

// ApproveTask approves a completed task and posts the reward to the child's
// ledger. The pending -> completed -> approved state machine guarantees the
// reward posts at most once.
func (s *taskService) ApproveTask(ctx context.Context, familyID, id, approvedBy string) (*models.Task, error) {
	task, err := s.GetTask(ctx, familyID, id)
	if err != nil {
		return nil, err
	}

	if err := task.MarkApproved(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// The status flip and the reward posting commit together; a failed
	// posting leaves the task completed and approvable again.
	if task.RewardCents > 0 {
		entry := models.NewTransaction(familyID, task.ChildID, models.TransactionTypeTaskReward, task.RewardCents, approvedBy)
		entry.Description = fmt.Sprintf("Reward for task %q", task.Title)
		if err := s.ledgerRepo.CreateWithTask(ctx, entry, task); err != nil {
			return nil, fmt.Errorf("failed to approve task: %w", err)
		}
	} else if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	notification := models.NewNotification(familyID, task.ChildID, models.NotificationTaskApproved,
		fmt.Sprintf("Task %q was approved", task.Title))
	_ = s.notificationRepo.Create(ctx, notification)

	return task, nil
}
