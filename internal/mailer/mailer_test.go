package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/velora-hq/careers/internal/config"
	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/pkg/logging"
)

var (
	testApp = models.Application{
		ID:    1,
		JobID: 2,
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+1 555 0100",
		Cover: "I would love to join.",
	}
	testJob = models.Job{ID: 2, Title: "Backend Engineer", Location: "Remote"}
)

func newTestMailer(t *testing.T, cfg config.Mail) (*Mailer, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "email-log.jsonl")
	m := New(cfg, NewLog(logPath, logging.NewNop()), logging.NewNop())
	return m, logPath
}

func readLogLines(t *testing.T, path string) []models.MailLogEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read mail log: %v", err)
	}
	var entries []models.MailLogEntry
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var e models.MailLogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestUnconfiguredMailerSkipsNetworkAndLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("mail API must not be called when unconfigured")
	}))
	defer srv.Close()

	// Only some ids present: still counts as unconfigured.
	m, logPath := newTestMailer(t, config.Mail{
		ServiceID: "svc",
		UserID:    "user",
		From:      "careers@velora.io",
		APIURL:    srv.URL,
	})
	if m.Configured() {
		t.Fatal("mailer with missing template ids must not report configured")
	}

	m.Send(context.Background(), KindConfirm, testApp, testJob)
	m.Send(context.Background(), KindReject, testApp, testJob)

	entries := readLogLines(t, logPath)
	if len(entries) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Sent {
			t.Fatalf("expected sent:false, got %+v", e)
		}
		if e.To != testApp.Email {
			t.Fatalf("wrong recipient %q", e.To)
		}
	}
}

func fullMailConfig(apiURL string) config.Mail {
	return config.Mail{
		ServiceID:         "svc",
		UserID:            "user",
		ConfirmTemplateID: "tpl-confirm",
		RejectTemplateID:  "tpl-reject",
		From:              "careers@velora.io",
		APIURL:            apiURL,
	}
}

func TestTransportFailureIsRecordedNotRaised(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	m, logPath := newTestMailer(t, fullMailConfig(srv.URL))
	m.Send(context.Background(), KindReject, testApp, testJob)

	entries := readLogLines(t, logPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(entries))
	}
	if entries[0].Sent {
		t.Fatal("failed send recorded as sent")
	}
	if !strings.Contains(entries[0].Note, "500") {
		t.Fatalf("note does not carry the status: %q", entries[0].Note)
	}
}

func TestSuccessfulSendPayloadAndLog(t *testing.T) {
	var payload struct {
		ServiceID      string            `json:"service_id"`
		TemplateID     string            `json:"template_id"`
		UserID         string            `json:"user_id"`
		TemplateParams map[string]string `json:"template_params"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer srv.Close()

	m, logPath := newTestMailer(t, fullMailConfig(srv.URL))
	m.Send(context.Background(), KindConfirm, testApp, testJob)

	if payload.ServiceID != "svc" || payload.UserID != "user" || payload.TemplateID != "tpl-confirm" {
		t.Fatalf("wrong ids in payload: %+v", payload)
	}
	p := payload.TemplateParams
	if p["email"] != testApp.Email || p["to_email"] != testApp.Email {
		t.Fatalf("recipient must appear under both keys: %v", p)
	}
	if p["name"] != testApp.Name || p["job_title"] != testJob.Title || p["location"] != testJob.Location {
		t.Fatalf("applicant/job params wrong: %v", p)
	}
	if p["from_email"] != "careers@velora.io" {
		t.Fatalf("sender missing: %v", p)
	}

	entries := readLogLines(t, logPath)
	if len(entries) != 1 || !entries[0].Sent {
		t.Fatalf("expected one sent:true line, got %+v", entries)
	}
	if !strings.Contains(entries[0].Subject, testJob.Title) {
		t.Fatalf("subject should mention the job: %q", entries[0].Subject)
	}
}

func TestRejectUsesRejectTemplate(t *testing.T) {
	var templateID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		templateID, _ = body["template_id"].(string)
	}))
	defer srv.Close()

	m, _ := newTestMailer(t, fullMailConfig(srv.URL))
	m.Send(context.Background(), KindReject, testApp, testJob)

	if templateID != "tpl-reject" {
		t.Fatalf("expected reject template, got %q", templateID)
	}
}
