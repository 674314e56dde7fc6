package handlers

import (
	"context"

	"family-finance-api/internal/models"
	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// TaskHandler handles chore requests
type TaskHandler struct {
	taskService services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create assigns a chore to a child
func (h *TaskHandler) Create(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	req, err := serverless.ReadJSONBody[*services.CreateTaskRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}
	if req != nil {
		req.CreatedBy = principal.UserID().String()
	}

	task, err := h.taskService.CreateTask(ctx, familyID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateCreatedResponse(task)
}

// List lists the family's tasks, optionally filtered by ?status=
func (h *TaskHandler) List(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	var status models.TaskStatus
	if raw, ok := serverless.QueryParam(c.Request(), "status"); ok {
		status = models.TaskStatus(raw)
	}

	tasks, err := h.taskService.ListTasks(ctx, familyID, status)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(tasks)
}

// Get retrieves one task by route ID
func (h *TaskHandler) Get(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TASK_ID", "Invalid task ID format")
	}

	task, err := h.taskService.GetTask(ctx, familyID, id.String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(task)
}

// Update edits a pending task
func (h *TaskHandler) Update(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TASK_ID", "Invalid task ID format")
	}

	req, err := serverless.ReadJSONBody[*services.UpdateTaskRequest](c.Request())
	if err != nil {
		return c.CreateBadRequestResponse(CodeValidationError, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(ctx, familyID, id.String(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(task)
}

// Delete removes an unapproved task
func (h *TaskHandler) Delete(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TASK_ID", "Invalid task ID format")
	}

	if err := h.taskService.DeleteTask(ctx, familyID, id.String()); err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateNoContentResponse(), nil
}

// Complete marks a task done, pending parent approval
func (h *TaskHandler) Complete(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TASK_ID", "Invalid task ID format")
	}

	task, err := h.taskService.CompleteTask(ctx, familyID, id.String(), principal.UserID().String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(task)
}

// Approve approves a completed task and releases its reward
func (h *TaskHandler) Approve(ctx context.Context, c *serverless.Context, principal *auth.Principal) (serverless.Response, error) {
	familyID, rejection, err := familyScope(c, principal)
	if rejection != nil || err != nil {
		return rejection, err
	}

	id, ok := serverless.RouteGUID(c.Request(), "id")
	if !ok {
		return c.CreateBadRequestResponse("INVALID_TASK_ID", "Invalid task ID format")
	}

	task, err := h.taskService.ApproveTask(ctx, familyID, id.String(), principal.UserID().String())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.CreateOKResponse(task)
}
