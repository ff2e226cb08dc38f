package store

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/velora-hq/careers/pkg/logging"
)

func TestJobRoundTrip(t *testing.T) {
	s := NewJobStore(t.TempDir(), logging.NewNop())

	want := []struct {
		title, location, description string
		openings, experience         string
	}{
		{"Backend Engineer", "Remote", "Go services", "2", "3"},
		{"Designer", "Berlin", "Product design", "1", "0"},
		{"SRE", "Lisbon", "Keep it running", "3", "5"},
	}
	for _, w := range want {
		s.Create(w.title, w.location, w.description, w.openings, w.experience)
		time.Sleep(2 * time.Millisecond) // ids are millisecond timestamps
	}

	got := s.List()
	if len(got) != len(want) {
		t.Fatalf("expected %d jobs, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Title != w.title || got[i].Location != w.location || got[i].Description != w.description {
			t.Fatalf("job %d mismatch: %+v", i, got[i])
		}
		if got[i].ID == 0 || got[i].PostedAt != got[i].ID {
			t.Fatalf("job %d has bad timestamps: %+v", i, got[i])
		}
	}
}

func TestListMissingOrCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewJobStore(dir, logging.NewNop())

	if got := s.List(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list for missing file, got %v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "jobs.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := s.List(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list for corrupt file, got %v", got)
	}
}

func TestCreateClampsNumericInput(t *testing.T) {
	s := NewJobStore(t.TempDir(), logging.NewNop())

	cases := []struct {
		openings, experience string
		wantOpen, wantExp    int
	}{
		{"", "", 1, 0},
		{"0", "-1", 1, 0},
		{"-3", "60", 1, 50},
		{"abc", "xyz", 1, 0},
		{"4", "7", 4, 7},
	}
	for _, c := range cases {
		job := s.Create("T", "L", "D", c.openings, c.experience)
		if job.Openings != c.wantOpen || job.Experience != c.wantExp {
			t.Fatalf("openings=%q experience=%q: got %d/%d, want %d/%d",
				c.openings, c.experience, job.Openings, job.Experience, c.wantOpen, c.wantExp)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestDeleteJob(t *testing.T) {
	s := NewJobStore(t.TempDir(), logging.NewNop())

	first := s.Create("First", "A", "d", "1", "0")
	time.Sleep(2 * time.Millisecond)
	second := s.Create("Second", "B", "d", "1", "0")

	id := strconv.FormatInt(first.ID, 10)
	if err := s.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.Get(id); ok {
		t.Fatal("deleted job still listed")
	}
	got := s.List()
	if len(got) != 1 || got[0].ID != second.ID {
		t.Fatalf("expected only the second job, got %v", got)
	}
}

func TestDeleteLastJobWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	s := NewJobStore(dir, logging.NewNop())

	job := s.Create("Only", "A", "d", "1", "0")
	if err := s.Delete(strconv.FormatInt(job.ID, 10)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "jobs.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		t.Fatalf("expected a JSON array, got %q", data)
	}
}
