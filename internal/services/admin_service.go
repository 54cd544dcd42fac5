package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/models"
	"carbontrack/internal/pagination"
)

// adminService handles user administration.
type adminService struct {
	db    *gorm.DB
	audit AuditServicer
}

// NewAdminService creates a new AdminServicer.
func NewAdminService(db *gorm.DB, audit AuditServicer) AdminServicer {
	return &adminService{db: db, audit: audit}
}

// ListUsers returns users newest first.
func (s *adminService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := s.db.Order("created_at DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(users, page.Page, page.PageSize, total)
	return &resp, nil
}

// ChangeRole sets the role of targetID. An empty role toggles between user
// and admin. Admins cannot change their own role.
func (s *adminService) ChangeRole(actorID, targetID string, role models.UserRole, ipAddress string) (*models.User, error) {
	if actorID == targetID {
		return nil, apperrors.ErrSelfRoleChange
	}

	var user models.User
	if err := s.db.Where("id = ?", targetID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	previous := user.Role
	next := role
	if next == "" {
		next = models.RoleAdmin
		if user.IsAdmin() {
			next = models.RoleUser
		}
	}
	if next == previous {
		return &user, nil
	}

	if err := s.db.Model(&user).Update("role", next).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Role = next

	s.audit.Log(actorID, AuditChangeRole, "user", user.ID, ipAddress, map[string]interface{}{
		"from": previous,
		"to":   next,
	})

	return &user, nil
}
