package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carbontrack/internal/carbon"
	"carbontrack/internal/models"
	"carbontrack/internal/report"
)

type mockEmissionRepository struct {
	mock.Mock
}

func (m *mockEmissionRepository) LoadRecords(ctx context.Context, userID string) ([]models.EmissionRecord, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]models.EmissionRecord)
	return rows, args.Error(1)
}

func (m *mockEmissionRepository) UpsertRecord(ctx context.Context, record *models.EmissionRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockEmissionRepository) SeedRecords(ctx context.Context, records []models.EmissionRecord) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockEmissionRepository) ResetAll(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type auditCall struct {
	UserID     string
	Action     string
	ResourceID string
	Changes    map[string]interface{}
}

type recordingAudit struct {
	calls []auditCall
}

func (a *recordingAudit) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	a.calls = append(a.calls, auditCall{UserID: userID, Action: action, ResourceID: resourceID, Changes: changes})
}

type recordingMetrics struct {
	calculations map[string]float64
	resets       int
	failures     []string
	reports      []string
	notes        []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{calculations: map[string]float64{}}
}

func (r *recordingMetrics) RecordCalculation(category string, kg float64) {
	r.calculations[category] += kg
}
func (r *recordingMetrics) RecordReset()                       { r.resets++ }
func (r *recordingMetrics) RecordPersistenceFailure(op string) { r.failures = append(r.failures, op) }
func (r *recordingMetrics) RecordReport(format, status string) {
	r.reports = append(r.reports, format+":"+status)
}
func (r *recordingMetrics) RecordNotification(ch, status string) {
	r.notes = append(r.notes, ch+":"+status)
}
func (r *recordingMetrics) ObserveHTTP(string, string, int, time.Duration) {}

type mockEmissionService struct {
	SnapshotFn func(ctx context.Context, session Session) (*carbon.Snapshot, error)
}

func (m *mockEmissionService) Snapshot(ctx context.Context, session Session) (*carbon.Snapshot, error) {
	return m.SnapshotFn(ctx, session)
}

func (m *mockEmissionService) Submit(context.Context, Session, string, float64) (*SubmitResult, error) {
	return nil, nil
}

func (m *mockEmissionService) Reset(context.Context, Session) (*carbon.Snapshot, error) {
	return nil, nil
}

func (m *mockEmissionService) Recommendations(context.Context, Session) ([]carbon.Advice, error) {
	return nil, nil
}

type mockRenderer struct {
	doc *report.Document
	err error
}

func (m *mockRenderer) Render(carbon.Snapshot) (*report.Document, error) {
	return m.doc, m.err
}

type mockDispatcher struct {
	sent []string
	err  error
}

func (m *mockDispatcher) Channel() string { return "mock" }

func (m *mockDispatcher) Send(_ context.Context, to string, _ *report.Document) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}
