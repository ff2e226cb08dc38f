package store

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/velora-hq/careers/internal/models"
	"github.com/velora-hq/careers/pkg/logging"
)

const (
	minOpenings   = 1
	maxExperience = 50
)

// JobStore persists job postings as a single JSON array in jobs.json.
// Every mutation is a whole-file read-modify-write with no locking;
// concurrent admin writes can race and the last writer wins.
type JobStore struct {
	path string
	log  *logging.Logger
}

func NewJobStore(dataDir string, log *logging.Logger) *JobStore {
	return &JobStore{path: filepath.Join(dataDir, "jobs.json"), log: log}
}

func (s *JobStore) List() []models.Job {
	return readAll[models.Job](s.path)
}

// Get finds a job by its decimal id string.
func (s *JobStore) Get(id string) (models.Job, bool) {
	for _, job := range s.List() {
		if strconv.FormatInt(job.ID, 10) == id {
			return job, true
		}
	}
	return models.Job{}, false
}

// Create appends a new posting. The id doubles as the creation timestamp.
// Openings and experience arrive as raw form input and are clamped;
// anything unparseable falls back to the defaults.
func (s *JobStore) Create(title, location, description, openings, experience string) models.Job {
	now := time.Now().UnixMilli()
	job := models.Job{
		ID:          now,
		Title:       strings.TrimSpace(title),
		Location:    strings.TrimSpace(location),
		Description: strings.TrimSpace(description),
		Openings:    parseOpenings(openings),
		Experience:  parseExperience(experience),
		PostedAt:    now,
	}
	jobs := append(s.List(), job)
	if err := writeAll(s.path, jobs); err != nil {
		s.log.Error("could not write jobs file", "path", s.path, "err", err)
	}
	return job
}

// Delete removes the posting with the given id and verifies the rewrite by
// re-reading the file. An id still present after the rewrite is a storage
// anomaly and surfaces as an error.
func (s *JobStore) Delete(id string) error {
	jobs := s.List()
	kept := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if strconv.FormatInt(job.ID, 10) == id {
			continue
		}
		kept = append(kept, job)
	}
	if err := writeAll(s.path, kept); err != nil {
		return err
	}
	for _, job := range s.List() {
		if strconv.FormatInt(job.ID, 10) == id {
			return fmt.Errorf("job %s still present after delete", id)
		}
	}
	return nil
}

func parseOpenings(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < minOpenings {
		return minOpenings
	}
	return n
}

func parseExperience(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	if n > maxExperience {
		return maxExperience
	}
	return n
}
