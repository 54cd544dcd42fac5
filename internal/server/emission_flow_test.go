package server

import (
	"net/http"
	"testing"

	"carbontrack/internal/models"
)

func TestGuestFlow_SessionIsIssuedAndKept(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/emissions", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	session := rec.Header().Get("X-Guest-Session")
	if session == "" {
		t.Fatal("expected a guest session header")
	}
	result := parseJSON(t, rec)
	if result["total"] != 0.0 {
		t.Errorf("expected empty ledger, got total %v", result["total"])
	}
	if len(result["records"].([]interface{})) != 5 {
		t.Errorf("expected all categories seeded, got %v", result["records"])
	}

	if got := app.submit(t, guest(session), "food", 4); got != 10 {
		t.Errorf("expected total 10, got %v", got)
	}
	if got := app.submit(t, guest(session), "electricity", 10); got != 15 {
		t.Errorf("expected total 15, got %v", got)
	}
	if got := app.total(t, guest(session)); got != 15 {
		t.Errorf("expected total 15 on reload, got %v", got)
	}

	other := app.request("GET", "/api/v1/emissions", "", nil)
	if other.Header().Get("X-Guest-Session") == session {
		t.Fatal("expected a different session for a new guest")
	}
	if parseJSON(t, other)["total"] != 0.0 {
		t.Error("guest sessions must not share ledgers")
	}

	if app.Guests.Len() != 1 {
		t.Errorf("expected only the submitting guest to hold a ledger, got %d", app.Guests.Len())
	}
}

func TestGuestFlow_ReadsDoNotAllocateLedgers(t *testing.T) {
	app := setupApp(t)

	for i := 0; i < 200; i++ {
		rec := app.request("GET", "/api/v1/emissions/recommendations", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		app.request("GET", "/api/v1/emissions", "", nil)
	}

	if app.Guests.Len() != 0 {
		t.Errorf("expected no guest ledgers after reads, got %d", app.Guests.Len())
	}
}

func TestGuestFlow_OverflowingAmountIsRejected(t *testing.T) {
	app := setupApp(t)
	session := app.request("GET", "/api/v1/emissions", "", nil).Header().Get("X-Guest-Session")

	rec := app.request("POST", "/api/v1/emissions/calculate", `{"category":"food","amount":1e308}`, guest(session))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "INVALID_AMOUNT" {
		t.Errorf("expected INVALID_AMOUNT, got %s", code)
	}

	if got := app.total(t, guest(session)); got != 0 {
		t.Errorf("expected total 0, got %v", got)
	}
	if rec := app.request("GET", "/api/v1/reports/pdf", "", guest(session)); rec.Code != http.StatusOK {
		t.Errorf("expected PDF to render, got %d", rec.Code)
	}
}

func TestUserFlow_EmissionsArePersisted(t *testing.T) {
	app := setupApp(t)
	token, _, userID := app.registerUser(t, "persist@test.com")

	if got := app.submit(t, bearer(token), "transportation", 100); got != 12 {
		t.Errorf("expected total 12, got %v", got)
	}
	if got := app.submit(t, bearer(token), "transportation", 50); got != 18 {
		t.Errorf("expected total 18, got %v", got)
	}

	restarted := app.restart()
	if got := restarted.total(t, bearer(token)); got != 18 {
		t.Errorf("expected persisted total 18, got %v", got)
	}

	var rows []models.EmissionRecord
	if err := app.DB.Where("user_id = ?", userID).Order("position").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load rows: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 stored records, got %d", len(rows))
	}
	if rows[0].Category != "transportation" || rows[0].Emissions != 18 {
		t.Errorf("unexpected first row %+v", rows[0])
	}

	var audits int64
	app.DB.Model(&models.AuditLog{}).Where("user_id = ? AND action = ?", userID, "CALCULATE_EMISSION").Count(&audits)
	if audits != 2 {
		t.Errorf("expected 2 calculation audit entries, got %d", audits)
	}
}

func TestUserFlow_InvalidEntriesChangeNothing(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "invalid@test.com")
	app.submit(t, bearer(token), "waste", 10)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"zero amount", `{"category":"waste","amount":0}`, "INVALID_AMOUNT"},
		{"negative amount", `{"category":"waste","amount":-5}`, "INVALID_AMOUNT"},
		{"text amount", `{"category":"waste","amount":"ten"}`, "INVALID_AMOUNT"},
		{"unknown category", `{"category":"flights","amount":5}`, "UNKNOWN_CATEGORY"},
		{"overflowing amount", `{"category":"food","amount":1e308}`, "INVALID_AMOUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/emissions/calculate", tt.body, bearer(token))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, code)
			}
		})
	}

	if got := app.total(t, bearer(token)); got != 5 {
		t.Errorf("expected total to stay 5, got %v", got)
	}

	restarted := app.restart()
	if got := restarted.total(t, bearer(token)); got != 5 {
		t.Errorf("expected total 5 after restart, got %v", got)
	}
	if rec := restarted.request("GET", "/api/v1/reports/pdf", "", bearer(token)); rec.Code != http.StatusOK {
		t.Errorf("expected PDF to render after restart, got %d", rec.Code)
	}
}

func TestUserFlow_Reset(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "reset@test.com")
	app.submit(t, bearer(token), "shopping", 10)

	rec := app.request("POST", "/api/v1/emissions/reset", "", bearer(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	snap := parseJSON(t, rec)["snapshot"].(map[string]interface{})
	if snap["total"] != 0.0 {
		t.Errorf("expected total 0, got %v", snap["total"])
	}
	if len(snap["records"].([]interface{})) != 5 {
		t.Error("reset must keep every category")
	}

	if got := app.restart().total(t, bearer(token)); got != 0 {
		t.Errorf("expected persisted total 0, got %v", got)
	}
}

func TestUserFlow_Recommendations(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "advice@test.com")
	app.submit(t, bearer(token), "electricity", 100)
	app.submit(t, bearer(token), "food", 4)

	rec := app.request("GET", "/api/v1/emissions/recommendations", "", bearer(token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	advice := parseJSON(t, rec)["recommendations"].([]interface{})
	if len(advice) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(advice))
	}
	if advice[0].(map[string]interface{})["category"] != "electricity" {
		t.Errorf("expected electricity advice first, got %v", advice[0])
	}
}

func TestCatalogueRoutes(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/categories", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/v1/tips", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
