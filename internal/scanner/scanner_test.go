package scanner

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-decisions/internal/decision"
	"go-decisions/internal/user"
)

type mockNotifier struct {
	calls []string
}

func (m *mockNotifier) Notify(recipient, message string) {
	m.calls = append(m.calls, recipient+": "+message)
}

func setupScannerDB(t *testing.T) *gorm.DB {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&user.User{},
		&decision.Decision{},
		&decision.Option{},
		&decision.Assumption{},
		&decision.Review{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{"reviews", "assumptions", "options", "decisions", "users"} {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
	return dbConn
}

func seedUserAndDecision(t *testing.T, db *gorm.DB, email string, reviewDate *time.Time) (*user.User, *decision.Decision) {
	u := user.User{Name: "u", Email: email, PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	d, err := decision.Create(db, u.ID, decision.CreateInput{
		Title: "Decide " + email, Category: "c", ConfidenceScore: 50, ReviewDate: reviewDate,
	})
	if err != nil {
		t.Fatalf("seed decision: %v", err)
	}
	return &u, d
}

func TestDueReviews_SelectsOverdueWithoutReview(t *testing.T) {
	dbConn := setupScannerDB(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	_, due := seedUserAndDecision(t, dbConn, "due@example.com", &yesterday)
	seedUserAndDecision(t, dbConn, "future@example.com", &tomorrow)
	seedUserAndDecision(t, dbConn, "nodate@example.com", nil)

	found, err := DueReviews(dbConn, time.Now())
	if err != nil {
		t.Fatalf("DueReviews failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 due decision, got %d: %+v", len(found), found)
	}
	if found[0].Email != "due@example.com" || found[0].DecisionID != due.ID {
		t.Errorf("unexpected candidate: %+v", found[0])
	}
	if found[0].Title != due.Title {
		t.Errorf("expected decision title, got %q", found[0].Title)
	}
}

func TestDueReviews_ExcludedAfterReview(t *testing.T) {
	dbConn := setupScannerDB(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	u, d := seedUserAndDecision(t, dbConn, "due@example.com", &yesterday)

	found, err := DueReviews(dbConn, time.Now())
	if err != nil {
		t.Fatalf("DueReviews failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected candidate before review, got %d", len(found))
	}

	if _, err := decision.SubmitReview(dbConn, u.ID, d.ID, decision.ReviewInput{OutcomeRating: 4}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	found, err = DueReviews(dbConn, time.Now())
	if err != nil {
		t.Fatalf("DueReviews failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("reviewed decision still selected: %+v", found)
	}
}

func TestDueReviews_Idempotent(t *testing.T) {
	dbConn := setupScannerDB(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	seedUserAndDecision(t, dbConn, "due@example.com", &yesterday)

	first, err := DueReviews(dbConn, time.Now())
	if err != nil {
		t.Fatalf("DueReviews failed: %v", err)
	}
	second, err := DueReviews(dbConn, time.Now())
	if err != nil {
		t.Fatalf("DueReviews failed: %v", err)
	}
	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Errorf("repeated scans differ: %+v vs %+v", first, second)
	}
}

func TestScan_NotifiesCandidates(t *testing.T) {
	dbConn := setupScannerDB(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	seedUserAndDecision(t, dbConn, "a@example.com", &yesterday)
	seedUserAndDecision(t, dbConn, "b@example.com", &yesterday)

	n := &mockNotifier{}
	s := New(dbConn, n, time.Hour, "")
	if !s.Scan(time.Now()) {
		t.Fatalf("scan unexpectedly skipped")
	}
	if len(n.calls) != 2 {
		t.Errorf("expected 2 notifications, got %d: %v", len(n.calls), n.calls)
	}
}

func TestScan_SkipsWhileInProgress(t *testing.T) {
	dbConn := setupScannerDB(t)
	n := &mockNotifier{}
	s := New(dbConn, n, time.Hour, "")

	s.scanning.Store(true)
	if s.Scan(time.Now()) {
		t.Errorf("overlapping scan should be skipped")
	}
	s.scanning.Store(false)
	if !s.Scan(time.Now()) {
		t.Errorf("scan should run once the previous one finished")
	}
}

func TestScan_SurvivesStoreError(t *testing.T) {
	dbConn := setupScannerDB(t)
	if err := dbConn.Migrator().DropTable(&decision.Decision{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	n := &mockNotifier{}
	s := New(dbConn, n, time.Hour, "")
	if !s.Scan(time.Now()) {
		t.Errorf("failed scan must still release the tick")
	}
	if len(n.calls) != 0 {
		t.Errorf("no notifications expected on store failure")
	}
	if s.scanning.Load() {
		t.Errorf("scanning flag leaked after failure")
	}
}

func TestNextCronDuration(t *testing.T) {
	if d := nextCronDuration("*/5 * * * *"); d <= 0 || d > 5*time.Minute {
		t.Errorf("unexpected duration for valid expression: %v", d)
	}
	if d := nextCronDuration("not a cron"); d != 0 {
		t.Errorf("expected 0 for invalid expression, got %v", d)
	}
}

func TestStartStop(t *testing.T) {
	dbConn := setupScannerDB(t)
	n := &mockNotifier{}
	s := New(dbConn, n, 50*time.Millisecond, "")

	done := make(chan struct{})
	go func() {
		s.Start()
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scanner did not stop")
	}
}
