package decision

import (
	"time"
)

type AssumptionStatus string

const (
	StatusPending AssumptionStatus = "pending"
	StatusTrue    AssumptionStatus = "true"
	StatusFalse   AssumptionStatus = "false"
)

func ValidStatus(s AssumptionStatus) bool {
	return s == StatusPending || s == StatusTrue || s == StatusFalse
}

type Decision struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	Title           string     `json:"title" gorm:"size:256;not null"`
	Category        string     `json:"category" gorm:"size:64;not null"`
	Description     string     `json:"description"`
	ConfidenceScore int        `json:"confidence_score" gorm:"not null"` // 0-100
	ExpectedOutcome string     `json:"expected_outcome"`
	DecisionDate    time.Time  `json:"decision_date"`
	ReviewDate      *time.Time `json:"review_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"-"`

	// Written exactly once, together with the Review insert.
	DecisionQuality *string `json:"decision_quality"`
	OutcomeQuality  *string `json:"outcome_quality"`

	Options     []Option     `json:"options" gorm:"foreignKey:DecisionID;constraint:OnDelete:CASCADE"`
	Assumptions []Assumption `json:"assumptions" gorm:"foreignKey:DecisionID;constraint:OnDelete:CASCADE"`
	Review      *Review      `json:"review" gorm:"foreignKey:DecisionID;constraint:OnDelete:CASCADE"`
}

type Option struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	DecisionID uint   `json:"decision_id" gorm:"index;not null"`
	OptionName string `json:"option_name" gorm:"size:256;not null"`
	Reasoning  string `json:"reasoning"`
}

type Assumption struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	DecisionID     uint             `json:"decision_id" gorm:"index;not null"`
	AssumptionText string           `json:"assumption_text" gorm:"not null"`
	Status         AssumptionStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`
}

type Review struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	DecisionID     uint      `json:"decision_id" gorm:"uniqueIndex;not null"` // at most one review per decision
	OutcomeRating  int       `json:"outcome_rating" gorm:"not null"` // 1-5
	OutcomeNotes   string    `json:"outcome_notes"`
	LessonsLearned string    `json:"lessons_learned"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
