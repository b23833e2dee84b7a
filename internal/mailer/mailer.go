// Package mailer is the notification boundary. Actual delivery is an
// external collaborator; the default implementation only records intent.
package mailer

import "github.com/rs/zerolog"

// Mailer sends moderation outcome notifications to organizations.
type Mailer interface {
	SendVerificationApproved(toEmail, orgName string) error
	SendVerificationRejected(toEmail, orgName, reason string) error
}

// LogMailer satisfies Mailer by logging instead of delivering. It stands in
// for the hosted email service in development and tests.
type LogMailer struct {
	Logger zerolog.Logger
}

// NewLogMailer creates a mailer that writes notifications to the log.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{Logger: logger.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) SendVerificationApproved(toEmail, orgName string) error {
	m.Logger.Info().
		Str("to", toEmail).
		Str("organization", orgName).
		Msg("Verification approved notification")
	return nil
}

func (m *LogMailer) SendVerificationRejected(toEmail, orgName, reason string) error {
	m.Logger.Info().
		Str("to", toEmail).
		Str("organization", orgName).
		Str("reason", reason).
		Msg("Verification rejected notification")
	return nil
}
