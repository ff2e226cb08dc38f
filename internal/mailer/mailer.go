package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/velora-hq/careers/internal/config"
	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/pkg/logging"
)

const (
	defaultAPIURL = "https://api.emailjs.com/api/v1.0/email/send"
	sendTimeout   = 15 * time.Second
)

type Kind string

const (
	KindConfirm Kind = "confirmation"
	KindReject  Kind = "rejection"
)

// Mailer sends templated notifications through the remote email API. It is
// nil-safe in spirit: when not fully configured it logs the intended
// message instead of sending, and transport failures are swallowed after
// being recorded — notification outcome never affects the caller.
type Mailer struct {
	cfg     config.Mail
	client  *http.Client
	mailLog *Log
	log     *logging.Logger
}

func New(cfg config.Mail, mailLog *Log, log *logging.Logger) *Mailer {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	return &Mailer{
		cfg:     cfg,
		client:  &http.Client{Timeout: sendTimeout},
		mailLog: mailLog,
		log:     log,
	}
}

func (m *Mailer) Configured() bool {
	return m.cfg.Configured()
}

// SendConfirmation dispatches the "application received" message without
// blocking the caller.
func (m *Mailer) SendConfirmation(app models.Application, job models.Job) {
	m.dispatch(KindConfirm, app, job)
}

// SendRejection dispatches the "application rejected" message without
// blocking the caller.
func (m *Mailer) SendRejection(app models.Application, job models.Job) {
	m.dispatch(KindReject, app, job)
}

func (m *Mailer) dispatch(kind Kind, app models.Application, job models.Job) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		m.Send(ctx, kind, app, job)
	}()
}

// Send performs one notification attempt synchronously and records it in
// the mail log. It never returns an error: skipped and failed sends are
// logged and the attempt is over.
func (m *Mailer) Send(ctx context.Context, kind Kind, app models.Application, job models.Job) {
	subject := subjectFor(kind, job)

	if !m.Configured() {
		m.log.Info("mail service not configured, message not sent",
			"kind", kind, "to", app.Email, "subject", subject)
		m.mailLog.Append(app.Email, subject, false, "mail service not configured")
		return
	}

	templateID := m.cfg.ConfirmTemplateID
	if kind == KindReject {
		templateID = m.cfg.RejectTemplateID
	}

	payload := map[string]any{
		"service_id":  m.cfg.ServiceID,
		"template_id": templateID,
		"user_id":     m.cfg.UserID,
		"template_params": map[string]string{
			"name":       app.Name,
			"email":      app.Email,
			"to_email":   app.Email, // the template's "to" binding
			"phone":      app.Phone,
			"cover":      app.Cover,
			"job_title":  job.Title,
			"location":   job.Location,
			"from_email": m.cfg.From,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		m.mailLog.Append(app.Email, subject, false, "encode payload: "+err.Error())
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		m.mailLog.Append(app.Email, subject, false, "build request: "+err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		m.log.Warn("mail send failed", "kind", kind, "to", app.Email, "err", err)
		m.mailLog.Append(app.Email, subject, false, err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		note := "mail API error " + resp.Status + ": " + strings.TrimSpace(string(detail))
		m.log.Warn("mail send rejected", "kind", kind, "to", app.Email, "status", resp.StatusCode)
		m.mailLog.Append(app.Email, subject, false, note)
		return
	}

	m.mailLog.Append(app.Email, subject, true, "")
}

func subjectFor(kind Kind, job models.Job) string {
	if kind == KindReject {
		return "Update on your application: " + job.Title
	}
	return "Application received: " + job.Title
}
