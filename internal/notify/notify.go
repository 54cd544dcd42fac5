// Package notify delivers rendered reports to users.
package notify

import (
	"context"
	"strings"

	"carbontrack/internal/report"
)

// Dispatcher sends a document to a single recipient.
type Dispatcher interface {
	Send(ctx context.Context, to string, doc *report.Document) error
	// Channel names the transport, for metrics and logs.
	Channel() string
}

// ValidateAddress reports whether to looks like an e-mail address.
// Only the presence of '@' is checked; the transport does the rest.
func ValidateAddress(to string) bool {
	return strings.Contains(strings.TrimSpace(to), "@")
}

const (
	reportSubject = "Your carbon footprint report"
	reportBody    = "Hello,\n\nYour carbon footprint report is attached.\n\nThank you for tracking your emissions with carbontrack.\n"
)
