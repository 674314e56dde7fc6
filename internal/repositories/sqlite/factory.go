package sqlite

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/repositories"
)

// NewRepositoryContainer wires all SQLite repositories over one connection
func NewRepositoryContainer(db *sql.DB, logger *logrus.Logger) *repositories.RepositoryContainer {
	if logger == nil {
		logger = logrus.New()
	}
	return &repositories.RepositoryContainer{
		ParentRepo:       NewParentRepository(db, logger),
		ChildRepo:        NewChildRepository(db, logger),
		LedgerRepo:       NewLedgerRepository(db, logger),
		TaskRepo:         NewTaskRepository(db, logger),
		GiftRepo:         NewGiftRepository(db, logger),
		NotificationRepo: NewNotificationRepository(db, logger),
	}
}
