package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	t.Run("reports ok without a database", func(t *testing.T) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(nil).Health)

		rec := doRequest(r, "GET", "/health", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("reports the database state", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock: %v", err)
		}
		defer db.Close()
		mock.ExpectPing()
		mock.ExpectPing().WillReturnError(errors.New("connection reset"))

		r := gin.New()
		r.GET("/health", NewHealthHandler(db).Health)

		rec := doRequest(r, "GET", "/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["database"] != "ok" {
			t.Errorf("unexpected body %s", rec.Body.String())
		}

		rec = doRequest(r, "GET", "/health", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}
