package decision

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing and not-owned entities so that a
	// caller can never learn another user's decision exists.
	ErrNotFound = errors.New("decision not found")

	ErrAssumptionNotFound = errors.New("assumption not found")
	ErrAlreadyReviewed    = errors.New("decision already reviewed")
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingCategory    = errors.New("category is required")
	ErrMissingAssumption  = errors.New("assumption_text is required")
	ErrMissingOptionName  = errors.New("option_name is required")
	ErrInvalidStatus      = errors.New("status must be pending, true or false")
)

// IsValidation reports whether err is a payload validation failure, as
// opposed to a missing entity, a conflict or a store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrConfidenceRange) ||
		errors.Is(err, ErrRatingRange) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingCategory) ||
		errors.Is(err, ErrMissingAssumption) ||
		errors.Is(err, ErrMissingOptionName) ||
		errors.Is(err, ErrInvalidStatus)
}

type OptionInput struct {
	OptionName string `json:"option_name"`
	Reasoning  string `json:"reasoning"`
}

type AssumptionInput struct {
	AssumptionText string           `json:"assumption_text"`
	Status         AssumptionStatus `json:"status"`
}

type CreateInput struct {
	Title           string            `json:"title"`
	Category        string            `json:"category"`
	Description     string            `json:"description"`
	ConfidenceScore int               `json:"confidence_score"`
	ExpectedOutcome string            `json:"expected_outcome"`
	DecisionDate    *time.Time        `json:"decision_date"`
	ReviewDate      *time.Time        `json:"review_date"`
	Options         []OptionInput     `json:"options"`
	Assumptions     []AssumptionInput `json:"assumptions"`
}

// Patch enumerates exactly the mutable scalar fields of a Decision. A nil
// field is left unchanged.
type Patch struct {
	Title           *string    `json:"title"`
	Category        *string    `json:"category"`
	Description     *string    `json:"description"`
	ConfidenceScore *int       `json:"confidence_score"`
	ExpectedOutcome *string    `json:"expected_outcome"`
	DecisionDate    *time.Time `json:"decision_date"`
	ReviewDate      *time.Time `json:"review_date"`
}

type ReviewInput struct {
	OutcomeRating  int    `json:"outcome_rating"`
	OutcomeNotes   string `json:"outcome_notes"`
	LessonsLearned string `json:"lessons_learned"`
}

// Get returns the caller's decision with children eagerly loaded, or
// ErrNotFound if it does not exist or belongs to someone else.
func Get(db *gorm.DB, userID, decisionID uint) (*Decision, error) {
	var d Decision
	err := db.
		Preload("Options").
		Preload("Assumptions").
		Preload("Review").
		Where("id = ? AND user_id = ?", decisionID, userID).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns a page of the caller's decisions with children eagerly loaded.
func List(db *gorm.DB, userID uint, skip, limit int) ([]Decision, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	var decisions []Decision
	err := db.
		Preload("Options").
		Preload("Assumptions").
		Preload("Review").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(skip).
		Limit(limit).
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

// Create persists a decision together with its options and assumptions as a
// single unit: if any child insert fails, nothing from the request survives.
func Create(db *gorm.DB, userID uint, in CreateInput) (*Decision, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, ErrMissingCategory
	}
	if in.ConfidenceScore < 0 || in.ConfidenceScore > 100 {
		return nil, ErrConfidenceRange
	}
	for _, opt := range in.Options {
		if strings.TrimSpace(opt.OptionName) == "" {
			return nil, ErrMissingOptionName
		}
	}
	for _, asm := range in.Assumptions {
		if strings.TrimSpace(asm.AssumptionText) == "" {
			return nil, ErrMissingAssumption
		}
		if asm.Status != "" && !ValidStatus(asm.Status) {
			return nil, ErrInvalidStatus
		}
	}

	decisionDate := time.Now()
	if in.DecisionDate != nil {
		decisionDate = *in.DecisionDate
	}

	d := Decision{
		UserID:          userID,
		Title:           in.Title,
		Category:        in.Category,
		Description:     in.Description,
		ConfidenceScore: in.ConfidenceScore,
		ExpectedOutcome: in.ExpectedOutcome,
		DecisionDate:    decisionDate,
		ReviewDate:      in.ReviewDate,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		for _, opt := range in.Options {
			o := Option{
				DecisionID: d.ID,
				OptionName: opt.OptionName,
				Reasoning:  opt.Reasoning,
			}
			if err := tx.Create(&o).Error; err != nil {
				return err
			}
		}
		for _, asm := range in.Assumptions {
			status := asm.Status
			if status == "" {
				status = StatusPending
			}
			a := Assumption{
				DecisionID:     d.ID,
				AssumptionText: asm.AssumptionText,
				Status:         status,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Get(db, userID, d.ID)
}

// Update applies a partial update. Editing confidence_score after a review
// exists does not recompute the stored quality labels.
func Update(db *gorm.DB, userID, decisionID uint, patch Patch) (*Decision, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, ErrMissingTitle
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, ErrMissingCategory
	}
	if patch.ConfidenceScore != nil && (*patch.ConfidenceScore < 0 || *patch.ConfidenceScore > 100) {
		return nil, ErrConfidenceRange
	}

	d, err := Get(db, userID, decisionID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.ConfidenceScore != nil {
		fields["confidence_score"] = *patch.ConfidenceScore
	}
	if patch.ExpectedOutcome != nil {
		fields["expected_outcome"] = *patch.ExpectedOutcome
	}
	if patch.DecisionDate != nil {
		fields["decision_date"] = *patch.DecisionDate
	}
	if patch.ReviewDate != nil {
		fields["review_date"] = *patch.ReviewDate
	}
	if len(fields) > 0 {
		if err := db.Model(d).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return Get(db, userID, decisionID)
}

// AddAssumption appends an assumption to a decision the caller owns. Legal in
// any decision state, including after review.
func AddAssumption(db *gorm.DB, userID, decisionID uint, in AssumptionInput) (*Assumption, error) {
	if strings.TrimSpace(in.AssumptionText) == "" {
		return nil, ErrMissingAssumption
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if _, err := Get(db, userID, decisionID); err != nil {
		return nil, err
	}

	a := Assumption{
		DecisionID:     decisionID,
		AssumptionText: in.AssumptionText,
		Status:         status,
	}
	if err := db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssumptionStatus overwrites an assumption's status. Ownership is
// checked through the parent decision; a miss is reported as not found.
func UpdateAssumptionStatus(db *gorm.DB, userID, assumptionID uint, status AssumptionStatus) (*Assumption, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var a Assumption
	err := db.
		Joins("JOIN decisions ON decisions.id = assumptions.decision_id").
		Where("assumptions.id = ? AND decisions.user_id = ?", assumptionID, userID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssumptionNotFound
		}
		return nil, err
	}

	if err := db.Model(&a).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// SubmitReview records the decision's real-world outcome exactly once. The
// review insert and the quality-label write happen in one transaction so the
// "quality set iff review exists" invariant holds even across crashes. A
// second submission fails with ErrAlreadyReviewed and leaves the first
// review untouched.
func SubmitReview(db *gorm.DB, userID, decisionID uint, in ReviewInput) (*Review, error) {
	var review Review
	err := db.Transaction(func(tx *gorm.DB) error {
		d, err := Get(tx, userID, decisionID)
		if err != nil {
			return err
		}
		if d.Review != nil {
			return ErrAlreadyReviewed
		}

		quality, outcome, err := Classify(d.ConfidenceScore, in.OutcomeRating)
		if err != nil {
			return err
		}

		review = Review{
			DecisionID:     d.ID,
			OutcomeRating:  in.OutcomeRating,
			OutcomeNotes:   in.OutcomeNotes,
			LessonsLearned: in.LessonsLearned,
			ReviewedAt:     time.Now(),
		}
		if err := tx.Create(&review).Error; err != nil {
			// Loser of a concurrent submit hits the unique index on
			// reviews.decision_id.
			if isUniqueViolation(err) {
				return ErrAlreadyReviewed
			}
			return err
		}

		return tx.Model(d).Updates(map[string]interface{}{
			"decision_quality": quality,
			"outcome_quality":  outcome,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
