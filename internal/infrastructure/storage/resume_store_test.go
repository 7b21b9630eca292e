package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func newTestStore(t *testing.T, maxSize int64) *ResumeStore {
	t.Helper()
	s, err := NewResumeStore(t.TempDir(), maxSize)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func pdfUpload(name string, content []byte) Upload {
	return Upload{
		FileName:    name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	}
}

func TestValidate_RejectsUnsupportedExtension(t *testing.T) {
	s := newTestStore(t, 1024)
	up := Upload{FileName: "resume.exe", ContentType: "application/pdf", Size: 10}
	if err := s.Validate(up); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidate_RejectsMismatchedMIME(t *testing.T) {
	s := newTestStore(t, 1024)
	up := Upload{FileName: "resume.pdf", ContentType: "application/x-msdownload", Size: 10}
	if err := s.Validate(up); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValidate_AcceptsKnownTypes(t *testing.T) {
	s := newTestStore(t, 1024)
	cases := []Upload{
		{FileName: "cv.pdf", ContentType: "application/pdf", Size: 10},
		{FileName: "CV.PDF", ContentType: "application/pdf; charset=binary", Size: 10},
		{FileName: "cv.doc", ContentType: "application/msword", Size: 10},
		{FileName: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 10},
	}
	for _, up := range cases {
		if err := s.Validate(up); err != nil {
			t.Fatalf("expected %s to validate, got %v", up.FileName, err)
		}
	}
}

func TestValidate_RejectsOversize(t *testing.T) {
	s := newTestStore(t, 100)
	up := Upload{FileName: "cv.pdf", ContentType: "application/pdf", Size: 101}
	if err := s.Validate(up); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestSave_WritesFileWithGeneratedName(t *testing.T) {
	s := newTestStore(t, 1024)
	name, err := s.Save(pdfUpload("my resume.pdf", []byte("%PDF-1.4 test")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	pattern := regexp.MustCompile(`^resume-\d+-[0-9a-f]{12}\.pdf$`)
	if !pattern.MatchString(name) {
		t.Fatalf("unexpected stored name %q", name)
	}

	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(b) != "%PDF-1.4 test" {
		t.Fatalf("stored content mismatch: %q", b)
	}
}

func TestSave_RejectsBodyLargerThanDeclared(t *testing.T) {
	s := newTestStore(t, 10)
	up := Upload{
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        5, // lies about the body
		Content:     strings.NewReader(strings.Repeat("x", 64)),
	}
	if _, err := s.Save(up); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files left behind, found %d", len(entries))
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, 1024)
	name, err := s.Save(pdfUpload("cv.pdf", []byte("data")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Remove(name); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.dir, name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err %v", err)
	}

	// Removing twice is fine.
	if err := s.Remove(name); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
