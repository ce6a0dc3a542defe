package decision

import (
	"testing"
)

func TestClassify_RuleTable(t *testing.T) {
	cases := []struct {
		confidence, rating int
		quality, outcome   string
	}{
		{90, 5, QualityGood, QualityGood},
		{70, 4, QualityGood, QualityGood},   // boundary: confident and right
		{70, 2, QualityPoor, QualityPoor},   // boundary: overconfidence
		{40, 4, QualityPoor, QualityGood},   // boundary: lucky outcome
		{40, 2, QualityGood, QualityPoor},   // boundary: calibrated caution
		{10, 1, QualityGood, QualityPoor},
		{95, 1, QualityPoor, QualityPoor},
		{55, 3, QualityNeutral, QualityAverage},
		{41, 1, QualityNeutral, QualityPoor},
		{69, 5, QualityNeutral, QualityGood},
		{70, 3, QualityNeutral, QualityAverage},
		{40, 3, QualityNeutral, QualityAverage},
		{0, 5, QualityPoor, QualityGood},
		{100, 5, QualityGood, QualityGood},
		{0, 1, QualityGood, QualityPoor},
	}
	for _, c := range cases {
		q, o, err := Classify(c.confidence, c.rating)
		if err != nil {
			t.Errorf("Classify(%d,%d) unexpected error: %v", c.confidence, c.rating, err)
			continue
		}
		if q != c.quality || o != c.outcome {
			t.Errorf("Classify(%d,%d) = (%s,%s), want (%s,%s)",
				c.confidence, c.rating, q, o, c.quality, c.outcome)
		}
	}
}

func TestClassify_TotalOverDomain(t *testing.T) {
	for conf := 0; conf <= 100; conf++ {
		for rating := 1; rating <= 5; rating++ {
			q, o, err := Classify(conf, rating)
			if err != nil {
				t.Fatalf("Classify(%d,%d) returned error: %v", conf, rating, err)
			}
			if q == "" || o == "" {
				t.Fatalf("Classify(%d,%d) returned empty label", conf, rating)
			}
		}
	}
}

func TestClassify_RejectsOutOfRange(t *testing.T) {
	if _, _, err := Classify(-1, 3); err != ErrConfidenceRange {
		t.Errorf("expected ErrConfidenceRange, got %v", err)
	}
	if _, _, err := Classify(101, 3); err != ErrConfidenceRange {
		t.Errorf("expected ErrConfidenceRange, got %v", err)
	}
	if _, _, err := Classify(50, 0); err != ErrRatingRange {
		t.Errorf("expected ErrRatingRange, got %v", err)
	}
	if _, _, err := Classify(50, 6); err != ErrRatingRange {
		t.Errorf("expected ErrRatingRange, got %v", err)
	}
}
