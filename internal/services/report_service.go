package services

import (
	"context"
	"time"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/logger"
	"carbontrack/internal/metrics"
	"carbontrack/internal/notify"
	"carbontrack/internal/report"
)

const reportFormatPDF = "pdf"

// reportService renders and delivers reports of the session's snapshot.
type reportService struct {
	emissions  EmissionServicer
	renderer   report.Renderer
	dispatcher notify.Dispatcher
	metrics    metrics.Recorder
	timeout    time.Duration
}

// NewReportService creates a new ReportServicer. dispatcher may be nil, in
// which case Email reports notifications as disabled.
func NewReportService(
	emissions EmissionServicer,
	renderer report.Renderer,
	dispatcher notify.Dispatcher,
	recorder metrics.Recorder,
	timeout time.Duration,
) ReportServicer {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &reportService{
		emissions:  emissions,
		renderer:   renderer,
		dispatcher: dispatcher,
		metrics:    recorder,
		timeout:    timeout,
	}
}

func (s *reportService) EmailEnabled() bool {
	return s.dispatcher != nil
}

// Export renders the current snapshot as a PDF.
func (s *reportService) Export(ctx context.Context, session Session) (*report.Document, error) {
	snap, err := s.emissions.Snapshot(ctx, session)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(*snap)
	if err != nil {
		s.metrics.RecordReport(reportFormatPDF, "error")
		logger.Get().Errorw("report rendering failed", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrReportFailed, err)
	}
	s.metrics.RecordReport(reportFormatPDF, "ok")
	return doc, nil
}

// Email renders the current snapshot and sends it to address.
func (s *reportService) Email(ctx context.Context, session Session, address string) error {
	if s.dispatcher == nil {
		return apperrors.ErrNotificationsDisabled
	}
	if !notify.ValidateAddress(address) {
		return apperrors.ErrInvalidEmail
	}

	doc, err := s.Export(ctx, session)
	if err != nil {
		return err
	}

	sendCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	channel := s.dispatcher.Channel()
	if err := s.dispatcher.Send(sendCtx, address, doc); err != nil {
		s.metrics.RecordNotification(channel, "error")
		logger.Get().Errorw("report dispatch failed", "channel", channel, "error", err)
		return apperrors.Wrap(apperrors.ErrDispatchFailed, err)
	}
	s.metrics.RecordNotification(channel, "ok")
	return nil
}
