package mailer

import (
	"encoding/json"
	"os"
	"time"

	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/pkg/logging"
)

// Log is the append-only audit trail of notification attempts,
// newline-delimited JSON. Failing to write the log is itself only logged.
type Log struct {
	path string
	log  *logging.Logger
}

func NewLog(path string, log *logging.Logger) *Log {
	return &Log{path: path, log: log}
}

func (l *Log) Append(to, subject string, sent bool, note string) {
	entry := models.MailLogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		To:        to,
		Subject:   subject,
		Sent:      sent,
		Note:      note,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		l.log.Warn("could not encode mail log entry", "err", err)
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l.log.Warn("could not open mail log", "path", l.path, "err", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		l.log.Warn("could not append mail log", "path", l.path, "err", err)
	}
}
