package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("resume must be a PDF, DOC or DOCX file")
	ErrTooLarge        = errors.New("resume exceeds the maximum allowed size")
)

// extension -> acceptable declared MIME types. Both the filename extension
// and the client-declared Content-Type must pass.
var allowedTypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
}

// Upload is the handler-agnostic view of a multipart file, so the
// application service and its tests never touch multipart themselves.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ResumeStore writes validated résumé uploads to a local directory with
// collision-free generated names and can remove them again on rollback.
type ResumeStore struct {
	dir     string
	maxSize int64
	now     func() time.Time
}

func NewResumeStore(dir string, maxSize int64) (*ResumeStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("empty upload dir")
	}
	if maxSize <= 0 {
		return nil, errors.New("non-positive max upload size")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ResumeStore{dir: dir, maxSize: maxSize, now: time.Now}, nil
}

func (s *ResumeStore) Validate(up Upload) error {
	ext := strings.ToLower(filepath.Ext(up.FileName))
	mimes, ok := allowedTypes[ext]
	if !ok {
		return ErrUnsupportedType
	}

	declared := strings.ToLower(strings.TrimSpace(up.ContentType))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	mimeOK := false
	for _, m := range mimes {
		if declared == m {
			mimeOK = true
			break
		}
	}
	if !mimeOK {
		return ErrUnsupportedType
	}

	if up.Size > s.maxSize {
		return ErrTooLarge
	}
	return nil
}

// Save validates and persists the upload, returning the stored filename.
func (s *ResumeStore) Save(up Upload) (string, error) {
	if err := s.Validate(up); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(up.FileName))
	name := fmt.Sprintf("resume-%d-%s%s", s.now().UnixMilli(), shortID(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}

	// Copy is capped one byte past the limit so an undeclared oversize
	// body is caught even when the multipart header lied about Size.
	n, err := io.Copy(dst, io.LimitReader(up.Content, s.maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("store resume: %w", err)
	}

	return name, nil
}

func (s *ResumeStore) Remove(name string) error {
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func shortID() string {
	id := uuid.NewString()
	return strings.ReplaceAll(id, "-", "")[:12]
}
