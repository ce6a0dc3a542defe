package scanner

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"go-decisions/internal/decision"
)

// DueReview is one reminder candidate: a decision past its review date with
// no review, paired with the owner's contact address.
type DueReview struct {
	Email      string
	Title      string
	DecisionID uint
}

// Notifier hands reminders to an external delivery channel. Fire-and-forget:
// implementations own their own error handling.
type Notifier interface {
	Notify(recipient, message string)
}

// DueReviews returns every decision whose review_date has passed without a
// review being submitted. Read-only and idempotent: nothing marks a decision
// as "already notified", so repeated scans return the same candidates until
// a review lands.
func DueReviews(db *gorm.DB, now time.Time) ([]DueReview, error) {
	var due []DueReview
	err := db.Model(&decision.Decision{}).
		Select("users.email AS email, decisions.title AS title, decisions.id AS decision_id").
		Joins("JOIN users ON users.id = decisions.user_id").
		Joins("LEFT JOIN reviews ON reviews.decision_id = decisions.id").
		Where("decisions.review_date IS NOT NULL").
		Where("decisions.review_date <= ?", now).
		Where("reviews.id IS NULL").
		Scan(&due).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}

// Scanner periodically sweeps for overdue reviews and hands the candidates
// to a Notifier. One scan at a time: a tick that fires while the previous
// scan is still running is skipped, never queued.
type Scanner struct {
	db       *gorm.DB
	notifier Notifier
	interval time.Duration
	schedule string // optional 5-field cron expression; overrides interval
	scanning atomic.Bool
	stopChan chan struct{}
}

func New(db *gorm.DB, notifier Notifier, interval time.Duration, schedule string) *Scanner {
	return &Scanner{
		db:       db,
		notifier: notifier,
		interval: interval,
		schedule: schedule,
		stopChan: make(chan struct{}),
	}
}

// Start runs the scan loop until Stop is called. Store failures skip the
// tick and the loop keeps going.
func (s *Scanner) Start() {
	if s.schedule != "" {
		log.Printf("[Scanner] Starting due-review scanner (cron %q)", s.schedule)
		s.runCron()
		return
	}
	log.Printf("[Scanner] Starting due-review scanner (every %s)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(time.Now())

	for {
		select {
		case <-ticker.C:
			s.Scan(time.Now())
		case <-s.stopChan:
			log.Printf("[Scanner] Stopping due-review scanner")
			return
		}
	}
}

func (s *Scanner) runCron() {
	for {
		wait := nextCronDuration(s.schedule)
		if wait <= 0 {
			// Bad expression; fall back to the fixed interval.
			log.Printf("[Scanner] Invalid cron schedule %q, using interval %s", s.schedule, s.interval)
			s.schedule = ""
			s.Start()
			return
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			s.Scan(time.Now())
		case <-s.stopChan:
			timer.Stop()
			log.Printf("[Scanner] Stopping due-review scanner")
			return
		}
	}
}

// Stop gracefully stops the scanner.
func (s *Scanner) Stop() {
	close(s.stopChan)
}

// Scan performs one sweep. Returns false if another scan was still in
// progress and this one was skipped.
func (s *Scanner) Scan(now time.Time) bool {
	if !s.scanning.CompareAndSwap(false, true) {
		return false
	}
	defer s.scanning.Store(false)

	due, err := DueReviews(s.db, now)
	if err != nil {
		log.Printf("[Scanner] Scan failed, retrying next tick: %v", err)
		return true
	}
	if len(due) == 0 {
		return true
	}

	log.Printf("[Scanner] Found %d decisions due for review", len(due))
	for _, d := range due {
		s.notifier.Notify(d.Email, fmt.Sprintf("Decision %q is due for review", d.Title))
	}
	return true
}
