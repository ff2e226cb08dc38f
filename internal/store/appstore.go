package store

import (
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/velora-hq/careers/internal/dtos"
	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/pkg/logging"
)

// ApplicationStore persists applications as a JSON array in
// applications.json. The record's resume field and the file under the
// uploads directory are two stores kept in sync by hand: every delete path
// also removes the file, best-effort.
type ApplicationStore struct {
	path      string
	uploadDir string
	log       *logging.Logger
}

func NewApplicationStore(dataDir, uploadDir string, log *logging.Logger) *ApplicationStore {
	return &ApplicationStore{
		path:      filepath.Join(dataDir, "applications.json"),
		uploadDir: uploadDir,
		log:       log,
	}
}

func (s *ApplicationStore) List() []models.Application {
	return readAll[models.Application](s.path)
}

func (s *ApplicationStore) Get(id string) (models.Application, bool) {
	for _, app := range s.List() {
		if strconv.FormatInt(app.ID, 10) == id {
			return app, true
		}
	}
	return models.Application{}, false
}

// Create appends a submission against the given job. resumeRef is the web
// path of the stored file ("/uploads/<name>"), or empty for none.
func (s *ApplicationStore) Create(job models.Job, form dtos.ApplicationForm, resumeRef string) models.Application {
	now := time.Now().UnixMilli()
	app := models.Application{
		ID:        now,
		JobID:     job.ID,
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Phone:     strings.TrimSpace(form.Phone),
		Cover:     strings.TrimSpace(form.Cover),
		AppliedAt: now,
	}
	if resumeRef != "" {
		app.Resume = &resumeRef
	}
	apps := append(s.List(), app)
	if err := writeAll(s.path, apps); err != nil {
		s.log.Error("could not write applications file", "path", s.path, "err", err)
	}
	return app
}

// Delete removes a single application and its resume file.
func (s *ApplicationStore) Delete(id string) error {
	apps := s.List()
	kept := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if strconv.FormatInt(app.ID, 10) == id {
			s.removeResume(app.Resume)
			continue
		}
		kept = append(kept, app)
	}
	return writeAll(s.path, kept)
}

// DeleteForJob removes every application referencing the given job id,
// along with their resume files. Applications for other jobs are untouched.
func (s *ApplicationStore) DeleteForJob(jobID string) error {
	apps := s.List()
	kept := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if strconv.FormatInt(app.JobID, 10) == jobID {
			s.removeResume(app.Resume)
			continue
		}
		kept = append(kept, app)
	}
	return writeAll(s.path, kept)
}

// removeResume resolves the stored web path against the uploads directory
// and unlinks the file. A missing or unremovable file is logged and the
// record deletion proceeds regardless.
func (s *ApplicationStore) removeResume(ref *string) {
	if ref == nil || *ref == "" {
		return
	}
	clean := strings.TrimLeft(filepath.ToSlash(*ref), "/")
	full := filepath.Join(s.uploadDir, path.Base(clean))
	if _, err := os.Stat(full); err != nil {
		s.log.Warn("resume file already gone", "path", full)
		return
	}
	if err := os.Remove(full); err != nil {
		s.log.Warn("could not remove resume file", "path", full, "err", err)
	}
}
