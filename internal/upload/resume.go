package upload

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/velora-hq/careers/pkg/logging"
)

const (
	// MaxSize is enforced while the upload is being written.
	MaxSize = 5 << 20
	// MinSize is enforced after the fact, against the file on disk.
	MinSize = 50 << 10
)

var (
	ErrTooLarge = errors.New("resume must be 5MB or smaller")
	ErrTooSmall = errors.New("resume must be at least 50KB")
	ErrBadType  = errors.New("resume must be a .pdf, .doc or .docx file")
)

var allowedExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var whitespace = regexp.MustCompile(`\s+`)

// Saver validates and persists uploaded resumes under a single directory.
type Saver struct {
	dir string
	log *logging.Logger
}

func NewSaver(dir string, log *logging.Logger) *Saver {
	return &Saver{dir: dir, log: log}
}

// Acceptable reports whether the upload passes the type check. A file is
// accepted when its extension is allowed OR its declared content type is
// allowed; the extension alone suffices even when the content type is
// wrong. Deliberately permissive.
func Acceptable(fh *multipart.FileHeader) bool {
	if allowedExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		return true
	}
	return allowedContentTypes[fh.Header.Get("Content-Type")]
}

// StoredName builds the on-disk filename: the submission timestamp in
// milliseconds, a dash, and the original name with whitespace runs
// collapsed to single underscores.
func StoredName(original string, ms int64) string {
	base := filepath.Base(original)
	return strconv.FormatInt(ms, 10) + "-" + whitespace.ReplaceAllString(base, "_")
}

// Save writes the upload to disk and returns the stored filename. The type
// and maximum size checks happen before and during the write, so a failure
// here leaves no file behind. The minimum size check is separate; see
// CheckMinSize.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxSize {
		return "", ErrTooLarge
	}
	if !Acceptable(fh) {
		return "", ErrBadType
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := StoredName(fh.Filename, time.Now().UnixMilli())
	full := filepath.Join(s.dir, name)
	dst, err := os.Create(full)
	if err != nil {
		return "", err
	}

	// The size header is client-supplied; cap the copy too.
	written, err := io.Copy(dst, io.LimitReader(src, MaxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.Discard(name)
		return "", err
	}
	if written > MaxSize {
		s.Discard(name)
		return "", ErrTooLarge
	}
	return name, nil
}

// CheckMinSize stats the saved file and rejects anything under the floor.
// An undersized (or unreadable) file is deleted immediately.
func (s *Saver) CheckMinSize(name string) error {
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil || info.Size() < MinSize {
		s.Discard(name)
		return ErrTooSmall
	}
	return nil
}

// Discard removes a stored file, typically after a validation failure that
// happened once the upload was already on disk.
func (s *Saver) Discard(name string) {
	full := filepath.Join(s.dir, name)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		s.log.Warn("could not discard upload", "path", full, "err", err)
	}
}
