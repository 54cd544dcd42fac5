package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/carbon"
	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/report"
	"carbontrack/internal/services"
)

// EmissionHandler handles emission-related requests
type EmissionHandler struct {
	emissionService services.EmissionServicer
}

// NewEmissionHandler creates a new EmissionHandler
func NewEmissionHandler(emissionService services.EmissionServicer) *EmissionHandler {
	return &EmissionHandler{emissionService: emissionService}
}

// CalculateRequest represents a single emission entry
type CalculateRequest struct {
	Category string   `json:"category" binding:"required,emission_category"`
	Amount   *float64 `json:"amount" binding:"required"`
}

// CalculateResponse is returned after an entry was added
type CalculateResponse struct {
	Message  string          `json:"message"`
	AddedKg  float64         `json:"added_kg"`
	Record   carbon.Record   `json:"record"`
	Snapshot carbon.Snapshot `json:"snapshot"`
}

// ResetResponse is returned after all totals were zeroed
type ResetResponse struct {
	Message  string          `json:"message"`
	Snapshot carbon.Snapshot `json:"snapshot"`
}

var calculateFieldErrors = map[string]*apperrors.AppError{
	"emission_category": apperrors.ErrUnknownCategory,
	"amount":            apperrors.ErrInvalidAmount,
	"Amount":            apperrors.ErrInvalidAmount,
}

// GetSnapshot returns the dashboard view of the caller's emissions
// @Summary     Get emissions
// @Description Records, total, goal progress, chart and recommendations
// @Tags        emissions
// @Produce     json
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Success     200 {object} carbon.Snapshot
// @Failure     503 {object} ErrorResponse "Persistence unavailable"
// @Router      /emissions [get]
func (h *EmissionHandler) GetSnapshot(c *gin.Context) {
	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snap, err := h.emissionService.Snapshot(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Calculate converts an activity amount to CO2e and adds it to the category
// @Summary     Add an emission entry
// @Description Convert an amount to kg CO2e and add it to the category total
// @Tags        emissions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Param       request body CalculateRequest true "Emission entry"
// @Success     200 {object} CalculateResponse
// @Failure     400 {object} ErrorResponse "Invalid amount or unknown category"
// @Failure     503 {object} ErrorResponse "Persistence unavailable"
// @Router      /emissions/calculate [post]
func (h *EmissionHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err, calculateFieldErrors))
		return
	}

	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.emissionService.Submit(c.Request.Context(), session, req.Category, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CalculateResponse{
		Message:  fmt.Sprintf("Added %s kg CO2e to %s", report.FormatKg(result.AddedKg), result.Record.Name),
		AddedKg:  result.AddedKg,
		Record:   result.Record,
		Snapshot: result.Snapshot,
	})
}

// Reset zeroes every category total
// @Summary     Reset emissions
// @Description Set every category total back to zero
// @Tags        emissions
// @Produce     json
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Success     200 {object} ResetResponse
// @Failure     503 {object} ErrorResponse "Persistence unavailable"
// @Router      /emissions/reset [post]
func (h *EmissionHandler) Reset(c *gin.Context) {
	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snap, err := h.emissionService.Reset(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ResetResponse{Message: "Emission history reset", Snapshot: *snap})
}

// GetRecommendations returns advice for the caller's highest category
// @Summary     Get recommendations
// @Tags        emissions
// @Produce     json
// @Security    BearerAuth
// @Param       X-Guest-Session header string false "Guest session id"
// @Success     200 {object} map[string][]carbon.Advice
// @Router      /emissions/recommendations [get]
func (h *EmissionHandler) GetRecommendations(c *gin.Context) {
	session, err := sessionFrom(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	advice, err := h.emissionService.Recommendations(c.Request.Context(), session)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": advice})
}
