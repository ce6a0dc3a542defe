package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"go-decisions/internal/analytics"
	"go-decisions/internal/db"
	"go-decisions/internal/decision"
)

func TestAnalyticsOverviewHandler_EmptyHistory(t *testing.T) {
	setupTestDB(t)
	resetTables(t)
	u := seedAccount(t, "empty@example.com")

	r := authedRouter(u.ID)
	r.GET("/analytics/overview", AnalyticsOverviewHandler())

	w := doJSON(t, r, "GET", "/analytics/overview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var o analytics.Overview
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("failed to decode overview: %v", err)
	}
	if o.TotalDecisions != 0 || o.ReviewedDecisions != 0 || o.PendingDecisions != 0 ||
		o.AverageConfidence != 0 || o.AverageOutcome != 0 {
		t.Errorf("expected all-zero overview, got %+v", o)
	}
}

func TestAnalyticsOverviewHandler_Aggregates(t *testing.T) {
	setupTestDB(t)
	resetTables(t)
	u := seedAccount(t, "stats@example.com")

	confidences := []int{10, 50, 90}
	var reviewed *decision.Decision
	for _, cScore := range confidences {
		d, err := decision.Create(db.DB, u.ID, decision.CreateInput{
			Title: "d", Category: "c", ConfidenceScore: cScore,
		})
		if err != nil {
			t.Fatalf("seed decision: %v", err)
		}
		reviewed = d
	}
	if _, err := decision.SubmitReview(db.DB, u.ID, reviewed.ID, decision.ReviewInput{OutcomeRating: 4}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	r := authedRouter(u.ID)
	r.GET("/analytics/overview", AnalyticsOverviewHandler())

	w := doJSON(t, r, "GET", "/analytics/overview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var o analytics.Overview
	if err := json.Unmarshal(w.Body.Bytes(), &o); err != nil {
		t.Fatalf("failed to decode overview: %v", err)
	}
	if o.TotalDecisions != 3 || o.ReviewedDecisions != 1 || o.PendingDecisions != 2 {
		t.Errorf("unexpected counts: %+v", o)
	}
	if o.AverageConfidence != 50.0 {
		t.Errorf("expected average confidence 50.0, got %v", o.AverageConfidence)
	}
	if o.AverageOutcome != 4.0 {
		t.Errorf("expected average outcome 4.0, got %v", o.AverageOutcome)
	}
}
