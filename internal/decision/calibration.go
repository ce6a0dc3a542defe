package decision

import (
	"errors"
)

// Quality labels written to a Decision when its review is submitted.
const (
	QualityGood    = "Good"
	QualityPoor    = "Poor"
	QualityNeutral = "Neutral"
	QualityAverage = "Average"
)

var (
	ErrConfidenceRange = errors.New("confidence_score must be between 0 and 100")
	ErrRatingRange     = errors.New("outcome_rating must be between 1 and 5")
)

// Classify compares pre-decision confidence against the reviewed outcome
// rating and returns (decision_quality, outcome_quality).
//
// Outcome quality depends on the rating alone: >=4 Good, <=2 Poor, 3 Average.
// Decision quality judges calibration:
//   - confident (>=70) and right (>=4)  -> Good
//   - confident (>=70) but wrong (<=2)  -> Poor (overconfidence)
//   - doubtful (<=40) but right (>=4)   -> Poor (underconfidence / luck)
//   - doubtful (<=40) and wrong (<=2)   -> Good (calibrated caution)
//   - anything else                     -> Neutral
func Classify(confidence, rating int) (string, string, error) {
	if confidence < 0 || confidence > 100 {
		return "", "", ErrConfidenceRange
	}
	if rating < 1 || rating > 5 {
		return "", "", ErrRatingRange
	}

	quality := QualityNeutral
	outcome := QualityAverage

	if rating >= 4 {
		outcome = QualityGood
		if confidence >= 70 {
			quality = QualityGood
		} else if confidence <= 40 {
			quality = QualityPoor
		}
	} else if rating <= 2 {
		outcome = QualityPoor
		if confidence >= 70 {
			quality = QualityPoor
		} else if confidence <= 40 {
			quality = QualityGood
		}
	}

	return quality, outcome, nil
}
