package analytics

import (
	"math"

	"gorm.io/gorm"

	"go-decisions/internal/decision"
)

// Overview summarizes a user's decision history. Averages are 0 (not null)
// when there is no history, rounded half-up to one decimal place.
type Overview struct {
	TotalDecisions    int64   `json:"total_decisions"`
	ReviewedDecisions int64   `json:"reviewed_decisions"`
	PendingDecisions  int64   `json:"pending_decisions"`
	AverageConfidence float64 `json:"average_confidence"`
	AverageOutcome    float64 `json:"average_outcome"`
}

type decisionAggregates struct {
	Total         int64
	Reviewed      int64
	AvgConfidence float64
}

// ComputeOverview aggregates in SQL rather than loading the history into
// memory, so it stays a fixed-size read as the decision set grows.
func ComputeOverview(db *gorm.DB, userID uint) (*Overview, error) {
	var agg decisionAggregates
	err := db.Model(&decision.Decision{}).
		Select(
			"COUNT(*) AS total, "+
				"COUNT(decision_quality) AS reviewed, "+
				"COALESCE(AVG(confidence_score), 0) AS avg_confidence").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	var avgOutcome float64
	err = db.Model(&decision.Review{}).
		Select("COALESCE(AVG(reviews.outcome_rating), 0)").
		Joins("JOIN decisions ON decisions.id = reviews.decision_id").
		Where("decisions.user_id = ?", userID).
		Scan(&avgOutcome).Error
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalDecisions:    agg.Total,
		ReviewedDecisions: agg.Reviewed,
		PendingDecisions:  agg.Total - agg.Reviewed,
		AverageConfidence: round1(agg.AvgConfidence),
		AverageOutcome:    round1(avgOutcome),
	}, nil
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
