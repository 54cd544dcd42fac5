package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carbontrack/internal/config"
	"carbontrack/internal/logger"
	"carbontrack/internal/models"
	"carbontrack/internal/report"
	"carbontrack/internal/testutil"
	"carbontrack/internal/validator"
)

const testMetricsKey = "metrics-key"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// sentReport is one captured dispatch.
type sentReport struct {
	to  string
	doc *report.Document
}

type captureDispatcher struct {
	mu   sync.Mutex
	sent []sentReport
}

func (d *captureDispatcher) Channel() string { return "capture" }

func (d *captureDispatcher) Send(_ context.Context, to string, doc *report.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentReport{to: to, doc: doc})
	return nil
}

// testApp holds the full application stack for flow tests.
type testApp struct {
	*App
	DB     *gorm.DB
	Config *config.Config
	Mail   *captureDispatcher
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.MetricsAPIKey = testMetricsKey
	return cfg
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testConfig(t)
	mail := &captureDispatcher{}
	return &testApp{App: New(cfg, db, mail), DB: db, Config: cfg, Mail: mail}
}

// restart rebuilds the stack on the same database, dropping in-memory state.
func (app *testApp) restart() *testApp {
	return &testApp{App: New(app.Config, app.DB, app.Mail), DB: app.DB, Config: app.Config, Mail: app.Mail}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func guest(id string) map[string]string {
	return map[string]string{"X-Guest-Session": id}
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, testutil.TestPassword)
	rec := app.request("POST", "/api/v1/auth/register", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

func (app *testApp) promote(t *testing.T, userID string) {
	t.Helper()
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
}

// submit posts one emission entry and returns the resulting total.
func (app *testApp) submit(t *testing.T, headers map[string]string, category string, amount float64) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"category":%q,"amount":%v}`, category, amount)
	rec := app.request("POST", "/api/v1/emissions/calculate", body, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("calculate failed: %d %s", rec.Code, rec.Body.String())
	}
	snap := parseJSON(t, rec)["snapshot"].(map[string]interface{})
	return snap["total"].(float64)
}

func (app *testApp) total(t *testing.T, headers map[string]string) float64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/emissions", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["total"].(float64)
}
