package config

import (
	"os"

	"github.com/google/uuid"
)

// Mail identifies the remote templated-email service. Sends only happen
// when all four ids are present; otherwise the mailer degrades to logging.
type Mail struct {
	ServiceID         string
	UserID            string
	ConfirmTemplateID string
	RejectTemplateID  string
	From              string
	APIURL            string // override for tests; empty means the real API
}

func (m Mail) Configured() bool {
	return m.ServiceID != "" && m.UserID != "" &&
		m.ConfirmTemplateID != "" && m.RejectTemplateID != ""
}

type Config struct {
	Port          string
	AdminUsername string
	AdminPassword string
	Mail          Mail
	DataDir       string
	UploadDir     string
	SessionSecret string
	LogLevel      string
}

// Load builds the config from environment variables. It never fails: the
// server starts even without admin credentials or mail ids, it just warns
// and disables the affected features.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		DataDir:       getEnv("DATA_DIR", "data"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Mail: Mail{
			ServiceID:         os.Getenv("MAIL_SERVICE_ID"),
			UserID:            os.Getenv("MAIL_USER_ID"),
			ConfirmTemplateID: os.Getenv("MAIL_TEMPLATE_CONFIRM"),
			RejectTemplateID:  os.Getenv("MAIL_TEMPLATE_REJECT"),
			From:              getEnv("MAIL_FROM", "careers@velora.io"),
			APIURL:            os.Getenv("MAIL_API_URL"),
		},
	}

	// Random per-process key when unset; sessions then don't survive a
	// restart, which is fine for a single admin.
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString()
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
