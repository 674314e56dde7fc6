package main

import (
	"log"

	"family-finance-api/internal/config"
	"family-finance-api/pkg/server"
	"family-finance-api/pkg/serverless/azureadapter"
)

// Each registered name matches a function directory in the Azure deployment;
// the Functions host routes HTTP triggers to POST /<name> on this process.
func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	routes := container.Routes
	host := azureadapter.NewHost(container.Logger)

	host.Register("Login", routes.Login)
	host.Register("IssueChildToken", routes.IssueChildToken)

	host.Register("CreateParent", routes.CreateParent)
	host.Register("ListParents", routes.ListParents)
	host.Register("GetParent", routes.GetParent)
	host.Register("UpdateParent", routes.UpdateParent)
	host.Register("DeleteParent", routes.DeleteParent)

	host.Register("CreateChild", routes.CreateChild)
	host.Register("ListChildren", routes.ListChildren)
	host.Register("GetChild", routes.GetChild)
	host.Register("UpdateChild", routes.UpdateChild)
	host.Register("DeleteChild", routes.DeleteChild)
	host.Register("GetChildBalance", routes.GetChildBalance)
	host.Register("PostAllowance", routes.PostAllowance)

	host.Register("RecordTransaction", routes.RecordTransaction)
	host.Register("ListTransactions", routes.ListTransactions)
	host.Register("GetTransaction", routes.GetTransaction)

	host.Register("CreateTask", routes.CreateTask)
	host.Register("ListTasks", routes.ListTasks)
	host.Register("GetTask", routes.GetTask)
	host.Register("UpdateTask", routes.UpdateTask)
	host.Register("DeleteTask", routes.DeleteTask)
	host.Register("CompleteTask", routes.CompleteTask)
	host.Register("ApproveTask", routes.ApproveTask)

	host.Register("CreateGift", routes.CreateGift)
	host.Register("ListGifts", routes.ListGifts)
	host.Register("GetGift", routes.GetGift)
	host.Register("ContributeToGift", routes.ContributeToGift)
	host.Register("CloseGift", routes.CloseGift)

	host.Register("ListNotifications", routes.ListNotifications)
	host.Register("MarkNotificationRead", routes.MarkNotificationRead)

	if err := host.ListenAndServe(); err != nil {
		log.Fatalf("Azure custom handler stopped: %v", err)
	}
}
