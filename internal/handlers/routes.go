package handlers

import (
	"family-finance-api/internal/services"
	"family-finance-api/pkg/auth"
	"family-finance-api/pkg/serverless"
)

// Routes is every API operation wrapped with its authorization policy. Each
// field is a ready-to-dispatch handler; the per-cloud entrypoints only route
// to them, so the policy is identical no matter which runtime is serving.
type Routes struct {
	// Auth
	Login           serverless.Handler
	IssueChildToken serverless.Handler

	// Parents
	CreateParent serverless.Handler
	ListParents  serverless.Handler
	GetParent    serverless.Handler
	UpdateParent serverless.Handler
	DeleteParent serverless.Handler

	// Children
	CreateChild     serverless.Handler
	ListChildren    serverless.Handler
	GetChild        serverless.Handler
	UpdateChild     serverless.Handler
	DeleteChild     serverless.Handler
	GetChildBalance serverless.Handler

	// Transactions
	RecordTransaction serverless.Handler
	ListTransactions  serverless.Handler
	GetTransaction    serverless.Handler
	PostAllowance     serverless.Handler

	// Tasks
	CreateTask   serverless.Handler
	ListTasks    serverless.Handler
	GetTask      serverless.Handler
	UpdateTask   serverless.Handler
	DeleteTask   serverless.Handler
	CompleteTask serverless.Handler
	ApproveTask  serverless.Handler

	// Gifts
	CreateGift       serverless.Handler
	ListGifts        serverless.Handler
	GetGift          serverless.Handler
	ContributeToGift serverless.Handler
	CloseGift        serverless.Handler

	// Notifications
	ListNotifications    serverless.Handler
	MarkNotificationRead serverless.Handler
}

// NewRoutes wires handlers and the gate into the fixed authorization policy:
// account and money mutations need the Parent role, task completion needs
// Child, reads accept either.
func NewRoutes(svcs *services.ServiceContainer, gate *auth.Gate, issuer *auth.TokenIssuer) *Routes {
	authHandler := NewAuthHandler(svcs.FamilyService, issuer)
	parentHandler := NewParentHandler(svcs.FamilyService)
	childHandler := NewChildHandler(svcs.FamilyService)
	txHandler := NewTransactionHandler(svcs.LedgerService)
	taskHandler := NewTaskHandler(svcs.TaskService)
	giftHandler := NewGiftHandler(svcs.GiftService)
	notificationHandler := NewNotificationHandler(svcs.NotificationService)

	return &Routes{
		Login:           authHandler.Login,
		IssueChildToken: gate.Require(authHandler.ChildToken, auth.RoleParent),

		CreateParent: gate.Require(parentHandler.Create, auth.RoleParent),
		ListParents:  gate.Require(parentHandler.List, auth.RoleParent, auth.RoleChild),
		GetParent:    gate.Require(parentHandler.Get, auth.RoleParent, auth.RoleChild),
		UpdateParent: gate.Require(parentHandler.Update, auth.RoleParent),
		DeleteParent: gate.Require(parentHandler.Delete, auth.RoleParent),

		CreateChild:     gate.Require(childHandler.Create, auth.RoleParent),
		ListChildren:    gate.Require(childHandler.List, auth.RoleParent, auth.RoleChild),
		GetChild:        gate.Require(childHandler.Get, auth.RoleParent, auth.RoleChild),
		UpdateChild:     gate.Require(childHandler.Update, auth.RoleParent),
		DeleteChild:     gate.Require(childHandler.Delete, auth.RoleParent),
		GetChildBalance: gate.Require(childHandler.Balance, auth.RoleParent, auth.RoleChild),

		RecordTransaction: gate.Require(txHandler.Record, auth.RoleParent),
		ListTransactions:  gate.Require(txHandler.List, auth.RoleParent, auth.RoleChild),
		GetTransaction:    gate.Require(txHandler.Get, auth.RoleParent, auth.RoleChild),
		PostAllowance:     gate.Require(txHandler.PostAllowance, auth.RoleParent),

		CreateTask:   gate.Require(taskHandler.Create, auth.RoleParent),
		ListTasks:    gate.Require(taskHandler.List, auth.RoleParent, auth.RoleChild),
		GetTask:      gate.Require(taskHandler.Get, auth.RoleParent, auth.RoleChild),
		UpdateTask:   gate.Require(taskHandler.Update, auth.RoleParent),
		DeleteTask:   gate.Require(taskHandler.Delete, auth.RoleParent),
		CompleteTask: gate.Require(taskHandler.Complete, auth.RoleChild),
		ApproveTask:  gate.Require(taskHandler.Approve, auth.RoleParent),

		CreateGift:       gate.Require(giftHandler.Create, auth.RoleParent),
		ListGifts:        gate.Require(giftHandler.List, auth.RoleParent, auth.RoleChild),
		GetGift:          gate.Require(giftHandler.Get, auth.RoleParent, auth.RoleChild),
		ContributeToGift: gate.Require(giftHandler.Contribute, auth.RoleParent, auth.RoleChild),
		CloseGift:        gate.Require(giftHandler.Close, auth.RoleParent),

		ListNotifications:    gate.Require(notificationHandler.List),
		MarkNotificationRead: gate.Require(notificationHandler.MarkRead),
	}
}
