package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/service"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

var errRatingRequired = appErrors.Clone(appErrors.ErrInvalidRating, "rating is required")

type feedbackService interface {
	Submit(ctx context.Context, studentID, eventID string, rating float64, comments *string) (*models.Feedback, error)
	Revise(ctx context.Context, id string, rating float64, comments *string) (*models.Feedback, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.EventFeedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentFeedback, error)
	StatsByEvent(ctx context.Context, eventID string) (*models.FeedbackStats, error)
}

// FeedbackHandler exposes feedback endpoints.
type FeedbackHandler struct {
	feedback feedbackService
}

// NewFeedbackHandler constructs FeedbackHandler.
func NewFeedbackHandler(feedback feedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit godoc
// @Summary Submit feedback for an attended event
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body service.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req service.SubmitFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Rating == nil {
		response.Error(c, errRatingRequired)
		return
	}
	fb, err := h.feedback.Submit(c.Request.Context(), req.StudentID, req.EventID, *req.Rating, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fb)
}

// Revise godoc
// @Summary Revise submitted feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param feedback_id path string true "Feedback ID"
// @Param payload body service.ReviseFeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Router /students/feedback/{feedback_id} [put]
func (h *FeedbackHandler) Revise(c *gin.Context) {
	var req service.ReviseFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Rating == nil {
		response.Error(c, errRatingRequired)
		return
	}
	fb, err := h.feedback.Revise(c.Request.Context(), c.Param("feedback_id"), *req.Rating, req.Comments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fb, nil)
}

// ListByEvent godoc
// @Summary List an event's feedback with rating stats
// @Tags Feedback
// @Produce json
// @Param event_id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{event_id}/feedback [get]
func (h *FeedbackHandler) ListByEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("event_id")
	rows, err := h.feedback.ListByEvent(ctx, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.feedback.StatsByEvent(ctx, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"stats": stats})
}

// ListByStudent godoc
// @Summary List a student's feedback
// @Tags Feedback
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{student_id}/feedback [get]
func (h *FeedbackHandler) ListByStudent(c *gin.Context) {
	rows, err := h.feedback.ListByStudent(c.Request.Context(), c.Param("student_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil, map[string]interface{}{"count": len(rows)})
}
