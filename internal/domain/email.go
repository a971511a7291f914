package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ConferenceCreatedEmailData holds data for the confirmation sent to an
// organizer after a conference is created.
type ConferenceCreatedEmailData struct {
	Email          string
	OrganizerName  string
	ConferenceName string
	City           string
	StartDate      string
	EndDate        string
	Topics         []string
	MaxAttendees   int
	ConferenceKey  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConferenceCreated(ctx context.Context, data *ConferenceCreatedEmailData) error
}
