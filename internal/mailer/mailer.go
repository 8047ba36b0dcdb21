// Package mailer abstracts outbound email dispatch. Send failures are always
// a best-effort concern: callers log and continue.
package mailer

import (
	"context"

	"go.uber.org/zap"
)

// Message is a rendered email ready for dispatch.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender dispatches one message. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of delivering them. Used when
// no mail provider is configured and in tests.
type LogSender struct {
	Log *zap.Logger
}

// NewLogSender returns a LogSender backed by the given logger.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{Log: log}
}

// Send logs the message and reports success.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.Log.Info("outbound email (log sink)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
