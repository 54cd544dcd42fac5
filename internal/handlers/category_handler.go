package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/internal/carbon"
	apperrors "carbontrack/internal/errors"
)

// CategoryHandler serves the emission category registry
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// TipResponse is one eco tip
type TipResponse struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Tip      string `json:"tip"`
}

// ListCategories returns every registered category in display order
// @Summary     List categories
// @Description Emission categories with their unit, factor and input prompt
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string][]carbon.Category
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": carbon.Categories()})
}

// GetCategory returns a single category
// @Summary     Get a category
// @Tags        categories
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {object} carbon.Category
// @Failure     404 {object} ErrorResponse "Unknown category"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, ok := carbon.Lookup(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Category not found"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListTips returns the eco tip of every category
// @Summary     List eco tips
// @Tags        categories
// @Produce     json
// @Success     200 {object} map[string][]TipResponse
// @Router      /tips [get]
func (h *CategoryHandler) ListTips(c *gin.Context) {
	categories := carbon.Categories()
	tips := make([]TipResponse, 0, len(categories))
	for _, cat := range categories {
		tips = append(tips, TipResponse{
			Category: cat.ID,
			Name:     cat.Name,
			Color:    cat.Color,
			Tip:      cat.EcoTip,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tips": tips})
}
