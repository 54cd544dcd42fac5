package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/models"
	"carbontrack/internal/pagination"
	"carbontrack/internal/services"
)

// AdminHandler handles user administration
type AdminHandler struct {
	adminService services.AdminServicer
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ChangeRoleRequest sets a user's role. An empty body toggles it.
type ChangeRoleRequest struct {
	Role models.UserRole `json:"role" binding:"omitempty,user_role"`
}

// ListUsers returns registered users, newest first
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[models.User]
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Router      /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.adminService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeRole sets or toggles another user's role
// @Summary     Change a user's role
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true  "User ID"
// @Param       request body ChangeRoleRequest false "Target role"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse "Invalid role or own account"
// @Failure     403 {object} ErrorResponse "Not an admin"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	targetID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	user, err := h.adminService.ChangeRole(actorID, targetID, req.Role, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role changed to " + string(user.Role),
		"user":    toUserResponse(user),
	})
}
