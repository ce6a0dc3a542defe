package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-decisions/internal/db"
	"go-decisions/internal/decision"
)

// Maps lifecycle errors to HTTP statuses: validation 422, ownership miss 404,
// duplicate review 400, anything else 500.
func respondDecisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, decision.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "decision not found"})
	case errors.Is(err, decision.ErrAssumptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "assumption not found"})
	case errors.Is(err, decision.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision already reviewed"})
	case decision.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idUint, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(idUint), true
}

// POST /decisions
func CreateDecisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var in decision.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
			return
		}

		d, err := decision.Create(db.DB, userID, in)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// GET /decisions?skip&limit
func ListDecisionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

		decisions, err := decision.List(db.DB, userID, skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch decisions"})
			return
		}
		c.JSON(http.StatusOK, decisions)
	}
}

// GET /decisions/:id
func GetDecisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		d, err := decision.Get(db.DB, userID, id)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// PUT /decisions/:id
//
// The patch type enumerates the mutable fields; unknown field names in the
// body are rejected rather than reflected onto storage.
func UpdateDecisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var patch decision.Patch
		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&patch); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid or unknown field in request body"})
			return
		}

		d, err := decision.Update(db.DB, userID, id, patch)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// POST /decisions/:id/assumptions
func AddAssumptionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var in decision.AssumptionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
			return
		}

		a, err := decision.AddAssumption(db.DB, userID, id, in)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// PATCH /assumptions/:assumption_id
func UpdateAssumptionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, ok := parseIDParam(c, "assumption_id")
		if !ok {
			return
		}

		var req struct {
			Status decision.AssumptionStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
			return
		}

		a, err := decision.UpdateAssumptionStatus(db.DB, userID, id, req.Status)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// POST /decisions/:id/review
func SubmitReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var in decision.ReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
			return
		}

		r, err := decision.SubmitReview(db.DB, userID, id, in)
		if err != nil {
			respondDecisionError(c, err)
			return
		}
		c.JSON(http.StatusOK, r)
	}
}
