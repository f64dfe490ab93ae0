// Package notify sends transactional email to patients about their
// appointments. Delivery is best-effort: booking and status changes never
// fail because an email could not be sent.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Template defines a reusable notification template. Placeholders use
// {{key}} syntax and are replaced from a data map at render time.
type Template struct {
	ID      string
	Subject string
	Body    string
}

// TemplateEngine manages notification templates and renders them with data.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewTemplateEngine creates a TemplateEngine with the built-in appointment
// templates pre-registered.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]*Template)}
	e.registerBuiltIn()
	return e
}

func (e *TemplateEngine) registerBuiltIn() {
	builtIn := []Template{
		{
			ID:      "appointment-booked",
			Subject: "Appointment Confirmed for {{patient_name}}",
			Body:    "Dear {{patient_name}}, your {{appointment_type}} appointment with {{doctor_name}} is booked for {{date}} at {{time}}. Current status: {{status}}.",
		},
		{
			ID:      "appointment-status",
			Subject: "Appointment Update for {{patient_name}}",
			Body:    "Dear {{patient_name}}, your appointment with {{doctor_name}} on {{date}} at {{time}} is now {{status}}.",
		},
		{
			ID:      "appointment-cancelled",
			Subject: "Appointment Cancelled",
			Body:    "Dear {{patient_name}}, your appointment with {{doctor_name}} on {{date}} at {{time}} has been cancelled. Reason: {{reason}}.",
		},
		{
			ID:      "appointment-reminder",
			Subject: "Appointment Reminder for {{patient_name}}",
			Body:    "Dear {{patient_name}}, this is a reminder of your appointment on {{date}} at {{time}} with {{doctor_name}}.",
		},
	}
	for i := range builtIn {
		t := builtIn[i]
		e.templates[t.ID] = &t
	}
}

// RegisterTemplate adds or replaces a template in the engine.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[t.ID] = &t
}

// Render looks up a template by ID and performs {{key}} replacement using the
// supplied data map. Keys present in the template but absent from data are
// left as-is.
func (e *TemplateEngine) Render(templateID string, data map[string]string) (subject, body string, err error) {
	e.mu.RLock()
	t, ok := e.templates[templateID]
	e.mu.RUnlock()
	if !ok {
		return "", "", fmt.Errorf("template %q not found", templateID)
	}

	subject = t.Subject
	body = t.Body
	for k, v := range data {
		placeholder := "{{" + k + "}}"
		subject = strings.ReplaceAll(subject, placeholder, v)
		body = strings.ReplaceAll(body, placeholder, v)
	}
	return subject, body, nil
}

// Notifier renders templates and dispatches them through an EmailSender.
type Notifier struct {
	sender    EmailSender
	templates *TemplateEngine
	logger    zerolog.Logger
}

// NewNotifier constructs a Notifier.
func NewNotifier(sender EmailSender, tpl *TemplateEngine, logger zerolog.Logger) *Notifier {
	return &Notifier{sender: sender, templates: tpl, logger: logger}
}

// Send renders the template and sends it to the recipient. Failures are
// logged and returned but callers are expected to treat them as non-fatal.
func (n *Notifier) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	subject, body, err := n.templates.Render(templateID, data)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	if err := n.sender.SendEmail(ctx, recipient, subject, body); err != nil {
		n.logger.Warn().
			Err(err).
			Str("template", templateID).
			Str("recipient", recipient).
			Msg("email delivery failed")
		return err
	}
	return nil
}

// LogSender writes outbound mail to the log instead of delivering it. Used
// in development and whenever no SMTP transport is configured.
type LogSender struct {
	Logger zerolog.Logger
}

func (s *LogSender) SendEmail(_ context.Context, to, subject, body string) error {
	s.Logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (log transport)")
	return nil
}

// EmailCall records a single call to SendEmail.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender is a test double for EmailSender.
type MockEmailSender struct {
	mu         sync.Mutex
	calls      []EmailCall
	ShouldFail bool
	FailError  string
}

// SendEmail records the call and optionally returns an error.
func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	if m.ShouldFail {
		return errors.New(m.FailError)
	}
	return nil
}

// Calls returns a copy of recorded email calls.
func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}
