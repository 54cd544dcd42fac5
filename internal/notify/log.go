package notify

import (
	"context"

	"go.uber.org/zap"

	"carbontrack/internal/report"
)

// LogDispatcher logs the send instead of delivering anything.
type LogDispatcher struct {
	log *zap.SugaredLogger
}

// NewLogDispatcher creates a LogDispatcher writing to log.
func NewLogDispatcher(log *zap.SugaredLogger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Channel() string { return "log" }

func (d *LogDispatcher) Send(ctx context.Context, to string, doc *report.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.log.Infow("report sent",
		"to", to,
		"filename", doc.Filename,
		"bytes", len(doc.Content),
		"pages", doc.Pages,
	)
	return nil
}
