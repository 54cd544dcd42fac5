package services

import (
	"context"

	"carbontrack/internal/carbon"
	"carbontrack/internal/models"
	"carbontrack/internal/pagination"
	"carbontrack/internal/report"
)

// Session identifies who a request acts for. Exactly one of UserID and
// GuestID is set.
type Session struct {
	UserID    string
	GuestID   string
	IPAddress string
}

// Authenticated reports whether the session belongs to a registered user.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserRole(id string) (models.UserRole, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AdminServicer defines the contract for user administration.
type AdminServicer interface {
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	ChangeRole(actorID, targetID string, role models.UserRole, ipAddress string) (*models.User, error)
}

// SubmitResult is returned by EmissionServicer.Submit.
type SubmitResult struct {
	AddedKg  float64         `json:"added_kg"`
	Record   carbon.Record   `json:"record"`
	Snapshot carbon.Snapshot `json:"snapshot"`
}

// EmissionServicer defines the contract for emission accounting.
type EmissionServicer interface {
	Snapshot(ctx context.Context, session Session) (*carbon.Snapshot, error)
	Submit(ctx context.Context, session Session, category string, amount float64) (*SubmitResult, error)
	Reset(ctx context.Context, session Session) (*carbon.Snapshot, error)
	Recommendations(ctx context.Context, session Session) ([]carbon.Advice, error)
}

// ReportServicer defines the contract for report export and delivery.
type ReportServicer interface {
	Export(ctx context.Context, session Session) (*report.Document, error)
	Email(ctx context.Context, session Session, address string) error
	EmailEnabled() bool
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
