package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/service"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type collegeService interface {
	Create(ctx context.Context, req service.CreateCollegeRequest) (*models.College, error)
	List(ctx context.Context) ([]models.College, error)
	Get(ctx context.Context, id string) (*models.CollegeDetail, error)
	Update(ctx context.Context, id string, req service.UpdateCollegeRequest) (*models.College, error)
}

// CollegeHandler exposes college endpoints.
type CollegeHandler struct {
	colleges collegeService
}

// NewCollegeHandler constructs CollegeHandler.
func NewCollegeHandler(colleges collegeService) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CreateCollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Router /colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CreateCollegeRequest
	if !bindJSON(c, &req) {
		return
	}
	college, err := h.colleges.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, college)
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.colleges.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, nil, map[string]interface{}{"count": len(colleges)})
}

// Get godoc
// @Summary Get college with stats
// @Tags Colleges
// @Produce json
// @Param college_id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Router /colleges/{college_id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.colleges.Get(c.Request.Context(), c.Param("college_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Update godoc
// @Summary Update college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param college_id path string true "College ID"
// @Param payload body service.UpdateCollegeRequest true "College payload"
// @Success 200 {object} response.Envelope
// @Router /colleges/{college_id} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	var req service.UpdateCollegeRequest
	if !bindJSON(c, &req) {
		return
	}
	college, err := h.colleges.Update(c.Request.Context(), c.Param("college_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}
