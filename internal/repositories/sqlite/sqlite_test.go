package sqlite

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"family-finance-api/internal/models"
	"family-finance-api/internal/repositories"
)

// newTestDB opens an in-memory database with the full schema applied. The
// pool is pinned to one connection because each SQLite :memory: connection
// is its own database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "0001_init_schema.up.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func newTestRepos(t *testing.T) *repositories.RepositoryContainer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRepositoryContainer(newTestDB(t), logger)
}

func seedParent(t *testing.T, repos *repositories.RepositoryContainer, familyID, email string) *models.Parent {
	t.Helper()

	parent := models.NewParent(familyID, "Ada", "Lovelace", email)
	if err := repos.ParentRepo.Create(context.Background(), parent); err != nil {
		t.Fatalf("seed parent: %v", err)
	}
	return parent
}

func seedChild(t *testing.T, repos *repositories.RepositoryContainer, familyID, parentID string) *models.Child {
	t.Helper()

	child := models.NewChild(familyID, parentID, "Sam")
	if err := repos.ChildRepo.Create(context.Background(), child); err != nil {
		t.Fatalf("seed child: %v", err)
	}
	return child
}

func TestParentRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")

	got, err := repos.ParentRepo.GetByID(ctx, parent.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "ada@example.com" || got.FamilyID != familyID {
		t.Errorf("got %+v", got)
	}

	byEmail, err := repos.ParentRepo.GetByEmail(ctx, "ada@example.com")
	if err != nil || byEmail.ID != parent.ID {
		t.Errorf("GetByEmail = %v, %v", byEmail, err)
	}

	parent.FirstName = "Adeline"
	if err := repos.ParentRepo.Update(ctx, parent); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repos.ParentRepo.GetByID(ctx, parent.ID)
	if err != nil || got.FirstName != "Adeline" {
		t.Errorf("after update: %v, %v", got, err)
	}

	listed, err := repos.ParentRepo.ListByFamily(ctx, familyID)
	if err != nil || len(listed) != 1 {
		t.Errorf("ListByFamily = %d entries, %v", len(listed), err)
	}

	if err := repos.ParentRepo.Delete(ctx, parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.ParentRepo.GetByID(ctx, parent.ID); !repositories.IsNotFound(err) {
		t.Errorf("err = %v, want not found after delete", err)
	}
}

func TestParentRepositoryDuplicateEmail(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	seedParent(t, repos, "family-a", "ada@example.com")

	dup := models.NewParent("family-b", "Other", "Person", "ada@example.com")
	err := repos.ParentRepo.Create(ctx, dup)
	if !repositories.IsDuplicate(err) {
		t.Errorf("err = %v, want duplicate entry", err)
	}
}

func TestParentRepositoryNotFound(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	if _, err := repos.ParentRepo.GetByID(ctx, "missing-id"); !repositories.IsNotFound(err) {
		t.Errorf("GetByID err = %v, want not found", err)
	}
	if err := repos.ParentRepo.Delete(ctx, "missing-id"); !repositories.IsNotFound(err) {
		t.Errorf("Delete err = %v, want not found", err)
	}
	parent := models.NewParent("family-a", "Ada", "Lovelace", "ada@example.com")
	if err := repos.ParentRepo.Update(ctx, parent); !repositories.IsNotFound(err) {
		t.Errorf("Update err = %v, want not found", err)
	}
}

func TestChildRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := models.NewChild(familyID, parent.ID, "Sam")
	child.AllowanceCents = 700
	if err := repos.ChildRepo.Create(ctx, child); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repos.ChildRepo.GetByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AllowanceCents != 700 || got.BalanceCents != 0 {
		t.Errorf("got allowance %d balance %d", got.AllowanceCents, got.BalanceCents)
	}
	if got.BirthDate != nil {
		t.Errorf("birth date = %v, want nil", got.BirthDate)
	}

	got.FirstName = "Samuel"
	got.AllowanceCents = 900
	if err := repos.ChildRepo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repos.ChildRepo.GetByID(ctx, child.ID)
	if err != nil || got.FirstName != "Samuel" || got.AllowanceCents != 900 {
		t.Errorf("after update: %+v, %v", got, err)
	}

	listed, err := repos.ChildRepo.ListByFamily(ctx, familyID)
	if err != nil || len(listed) != 1 {
		t.Errorf("ListByFamily = %d entries, %v", len(listed), err)
	}

	if err := repos.ChildRepo.Delete(ctx, child.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.ChildRepo.GetByID(ctx, child.ID); !repositories.IsNotFound(err) {
		t.Errorf("err = %v, want not found after delete", err)
	}
}

func TestLedgerRepositoryCreateAppliesBalance(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)

	credit := models.NewTransaction(familyID, child.ID, models.TransactionTypeAllowance, 500, parent.ID)
	if err := repos.LedgerRepo.Create(ctx, credit); err != nil {
		t.Fatalf("Create credit: %v", err)
	}
	debit := models.NewTransaction(familyID, child.ID, models.TransactionTypeSpending, -200, parent.ID)
	if err := repos.LedgerRepo.Create(ctx, debit); err != nil {
		t.Fatalf("Create debit: %v", err)
	}

	got, err := repos.ChildRepo.GetByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.BalanceCents != 300 {
		t.Errorf("balance = %d, want 300", got.BalanceCents)
	}

	total, err := repos.LedgerRepo.BalanceForChild(ctx, child.ID)
	if err != nil {
		t.Fatalf("BalanceForChild: %v", err)
	}
	if total != 300 {
		t.Errorf("ledger total = %d, want 300", total)
	}
}

func TestLedgerRepositoryCreateUnknownChild(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	entry := models.NewTransaction("family-a", "missing-child", models.TransactionTypeAllowance, 500, "someone")
	err := repos.LedgerRepo.Create(ctx, entry)
	if !repositories.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}

	// The aborted transaction must leave no ledger row behind.
	if _, err := repos.LedgerRepo.GetByID(ctx, entry.ID); !repositories.IsNotFound(err) {
		t.Errorf("orphan ledger row found: %v", err)
	}
}

func TestLedgerRepositoryCreateValidation(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	entry := models.NewTransaction("family-a", "child-id", models.TransactionTypeAllowance, 0, "someone")
	if err := repos.LedgerRepo.Create(ctx, entry); !repositories.IsValidation(err) {
		t.Errorf("err = %v, want validation error for a zero amount", err)
	}
}

func TestLedgerRepositoryCreateWithTask(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)

	task := models.NewTask(familyID, child.ID, "Clean room", 500, parent.ID)
	if err := repos.TaskRepo.Create(ctx, task); err != nil {
		t.Fatalf("Create task: %v", err)
	}
	if err := task.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := repos.TaskRepo.Update(ctx, task); err != nil {
		t.Fatalf("Update task: %v", err)
	}
	if err := task.MarkApproved(); err != nil {
		t.Fatalf("MarkApproved: %v", err)
	}

	entry := models.NewTransaction(familyID, child.ID, models.TransactionTypeTaskReward, 500, parent.ID)
	if err := repos.LedgerRepo.CreateWithTask(ctx, entry, task); err != nil {
		t.Fatalf("CreateWithTask: %v", err)
	}

	got, err := repos.TaskRepo.GetByID(ctx, task.ID)
	if err != nil || got.Status != models.TaskStatusApproved {
		t.Errorf("task after posting = %+v, %v, want approved", got, err)
	}
	balance, err := repos.ChildRepo.GetByID(ctx, child.ID)
	if err != nil || balance.BalanceCents != 500 {
		t.Errorf("balance = %+v, %v, want 500", balance, err)
	}
	if _, err := repos.LedgerRepo.GetByID(ctx, entry.ID); err != nil {
		t.Errorf("ledger row missing: %v", err)
	}
}

func TestLedgerRepositoryCreateWithTaskRollsBack(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)

	task := models.NewTask(familyID, child.ID, "Clean room", 500, parent.ID)
	if err := task.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := repos.TaskRepo.Create(ctx, task); err != nil {
		t.Fatalf("Create task: %v", err)
	}

	approved := *task
	if err := approved.MarkApproved(); err != nil {
		t.Fatalf("MarkApproved: %v", err)
	}

	// A reward entry against an unknown child aborts the whole posting, so
	// the task must stay completed.
	entry := models.NewTransaction(familyID, "missing-child", models.TransactionTypeTaskReward, 500, parent.ID)
	if err := repos.LedgerRepo.CreateWithTask(ctx, entry, &approved); !repositories.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}

	got, err := repos.TaskRepo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.TaskStatusCompleted {
		t.Errorf("status = %s after aborted posting, want completed", got.Status)
	}
	if _, err := repos.LedgerRepo.GetByID(ctx, entry.ID); !repositories.IsNotFound(err) {
		t.Errorf("orphan ledger row found: %v", err)
	}
}

func TestLedgerRepositoryCreateWithGift(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)
	if err := repos.LedgerRepo.Create(ctx, models.NewTransaction(familyID, child.ID, models.TransactionTypeAllowance, 1000, parent.ID)); err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	gift := models.NewGift(familyID, "Bike", "Sam", 5000, parent.ID)
	if err := repos.GiftRepo.Create(ctx, gift); err != nil {
		t.Fatalf("Create gift: %v", err)
	}
	if err := gift.Contribute(400); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	entry := models.NewTransaction(familyID, child.ID, models.TransactionTypeGift, -400, child.ID)
	if err := repos.LedgerRepo.CreateWithGift(ctx, entry, gift); err != nil {
		t.Fatalf("CreateWithGift: %v", err)
	}

	got, err := repos.GiftRepo.GetByID(ctx, gift.ID)
	if err != nil || got.ContributedCents != 400 {
		t.Errorf("gift after posting = %+v, %v, want 400 contributed", got, err)
	}
	balance, err := repos.ChildRepo.GetByID(ctx, child.ID)
	if err != nil || balance.BalanceCents != 600 {
		t.Errorf("balance = %+v, %v, want 600", balance, err)
	}
}

func TestLedgerRepositoryCreateWithGiftRollsBack(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	gift := models.NewGift(familyID, "Bike", "Sam", 5000, "creator-id")
	if err := repos.GiftRepo.Create(ctx, gift); err != nil {
		t.Fatalf("Create gift: %v", err)
	}

	contributed := *gift
	if err := contributed.Contribute(400); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	entry := models.NewTransaction(familyID, "missing-child", models.TransactionTypeGift, -400, "missing-child")
	if err := repos.LedgerRepo.CreateWithGift(ctx, entry, &contributed); !repositories.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}

	got, err := repos.GiftRepo.GetByID(ctx, gift.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ContributedCents != 0 || got.Status != models.GiftStatusOpen {
		t.Errorf("gift = %d cents %s after aborted posting, want 0 open", got.ContributedCents, got.Status)
	}
}

func TestLedgerRepositoryListFilters(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)
	other := seedChild(t, repos, familyID, parent.ID)

	entries := []*models.Transaction{
		models.NewTransaction(familyID, child.ID, models.TransactionTypeAllowance, 500, parent.ID),
		models.NewTransaction(familyID, child.ID, models.TransactionTypeSpending, -100, parent.ID),
		models.NewTransaction(familyID, other.ID, models.TransactionTypeAllowance, 300, parent.ID),
	}
	for _, entry := range entries {
		if err := repos.LedgerRepo.Create(ctx, entry); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repos.LedgerRepo.ListByFamily(ctx, familyID, nil)
	if err != nil || len(all) != 3 {
		t.Errorf("unfiltered = %d entries, %v", len(all), err)
	}

	byChild, err := repos.LedgerRepo.ListByFamily(ctx, familyID, &repositories.LedgerFilters{ChildID: child.ID})
	if err != nil || len(byChild) != 2 {
		t.Errorf("by child = %d entries, %v", len(byChild), err)
	}

	byType, err := repos.LedgerRepo.ListByFamily(ctx, familyID, &repositories.LedgerFilters{Type: models.TransactionTypeAllowance})
	if err != nil || len(byType) != 2 {
		t.Errorf("by type = %d entries, %v", len(byType), err)
	}

	limited, err := repos.LedgerRepo.ListByFamily(ctx, familyID, &repositories.LedgerFilters{Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Errorf("limited = %d entries, %v", len(limited), err)
	}

	none, err := repos.LedgerRepo.ListByFamily(ctx, "some-other-family", nil)
	if err != nil || len(none) != 0 {
		t.Errorf("other family = %d entries, %v", len(none), err)
	}
}

func TestTaskRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	parent := seedParent(t, repos, familyID, "ada@example.com")
	child := seedChild(t, repos, familyID, parent.ID)

	task := models.NewTask(familyID, child.ID, "Clean room", 500, parent.ID)
	if err := repos.TaskRepo.Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repos.TaskRepo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.TaskStatusPending || got.RewardCents != 500 {
		t.Errorf("got %+v", got)
	}
	if got.CompletedAt != nil || got.ApprovedAt != nil {
		t.Errorf("timestamps should start nil: %+v", got)
	}

	if err := got.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := repos.TaskRepo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repos.TaskRepo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.TaskStatusCompleted || got.CompletedAt == nil {
		t.Errorf("after completion: %+v", got)
	}

	pending, err := repos.TaskRepo.ListByFamily(ctx, familyID, models.TaskStatusPending)
	if err != nil || len(pending) != 0 {
		t.Errorf("pending = %d entries, %v", len(pending), err)
	}
	completed, err := repos.TaskRepo.ListByFamily(ctx, familyID, models.TaskStatusCompleted)
	if err != nil || len(completed) != 1 {
		t.Errorf("completed = %d entries, %v", len(completed), err)
	}
	all, err := repos.TaskRepo.ListByFamily(ctx, familyID, "")
	if err != nil || len(all) != 1 {
		t.Errorf("all = %d entries, %v", len(all), err)
	}

	if err := repos.TaskRepo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.TaskRepo.GetByID(ctx, task.ID); !repositories.IsNotFound(err) {
		t.Errorf("err = %v, want not found after delete", err)
	}
}

func TestGiftRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"

	gift := models.NewGift(familyID, "Bike for Sam", "Sam", 10000, "creator-id")
	if err := repos.GiftRepo.Create(ctx, gift); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repos.GiftRepo.GetByID(ctx, gift.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.GiftStatusOpen || got.GoalCents != 10000 || got.ContributedCents != 0 {
		t.Errorf("got %+v", got)
	}

	if err := got.Contribute(10000); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if err := repos.GiftRepo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repos.GiftRepo.GetByID(ctx, gift.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.GiftStatusFunded || got.ContributedCents != 10000 {
		t.Errorf("after funding: %+v", got)
	}

	listed, err := repos.GiftRepo.ListByFamily(ctx, familyID)
	if err != nil || len(listed) != 1 {
		t.Errorf("ListByFamily = %d entries, %v", len(listed), err)
	}
}

func TestNotificationRepository(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	familyID := "f0000000-0000-0000-0000-000000000001"
	userID := "u0000000-0000-0000-0000-000000000001"

	first := models.NewNotification(familyID, userID, models.NotificationTaskCompleted, "Sam completed Clean room")
	second := models.NewNotification(familyID, userID, models.NotificationTaskApproved, "Clean room was approved")
	for _, n := range []*models.Notification{first, second} {
		if err := repos.NotificationRepo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	unread, err := repos.NotificationRepo.ListByUser(ctx, userID, true)
	if err != nil || len(unread) != 2 {
		t.Fatalf("unread = %d entries, %v", len(unread), err)
	}

	if err := repos.NotificationRepo.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, err = repos.NotificationRepo.ListByUser(ctx, userID, true)
	if err != nil || len(unread) != 1 {
		t.Errorf("unread after mark = %d entries, %v", len(unread), err)
	}
	all, err := repos.NotificationRepo.ListByUser(ctx, userID, false)
	if err != nil || len(all) != 2 {
		t.Errorf("all = %d entries, %v", len(all), err)
	}

	if err := repos.NotificationRepo.MarkRead(ctx, "missing-id"); !repositories.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}
