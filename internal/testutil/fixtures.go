package testutil

import (
	"testing"

	"carbontrack/internal/carbon"
	"carbontrack/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithEmail(t, db, gofakeit.Email())
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates a user holding the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, gofakeit.Email(), models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestEmissionRecord stores a record for category at position with
// the given running total.
func CreateTestEmissionRecord(t *testing.T, db *gorm.DB, userID string, position int, category string, emissions float64) *models.EmissionRecord {
	t.Helper()

	row := models.NewEmissionRecord(userID, position, carbon.Record{
		Category:  category,
		Name:      carbon.NameOf(category),
		Color:     carbon.ColorOf(category),
		Unit:      carbon.UnitOf(category),
		Emissions: emissions,
	})
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create test emission record: %v", err)
	}
	return &row
}

// SeedDefaultLedger stores the default zeroed ledger for userID.
func SeedDefaultLedger(t *testing.T, db *gorm.DB, userID string) []models.EmissionRecord {
	t.Helper()

	records := carbon.DefaultRecords()
	rows := make([]models.EmissionRecord, len(records))
	for i, r := range records {
		rows[i] = models.NewEmissionRecord(userID, i, r)
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed default ledger: %v", err)
	}
	return rows
}
