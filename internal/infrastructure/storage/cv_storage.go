package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
)

var (
	ErrNotPDF    = errors.New("only PDF files are allowed")
	ErrTooLarge  = errors.New("file exceeds the size limit")
	ErrEmptyFile = errors.New("empty file")
)

// PublicCVPrefix is the URL prefix the upload directory is served under.
// Save returns paths below it, whatever the configured directory is.
const PublicCVPrefix = "/uploads/cv"

// CVStorage writes uploaded CVs to local disk under a generated name and
// returns the public path recorded on the profile.
type CVStorage struct {
	dir     string
	maxSize int64
}

func NewCVStorage(cfg config.UploadConfig) *CVStorage {
	return &CVStorage{dir: cfg.Dir, maxSize: cfg.MaxCVSizeByte}
}

func (s *CVStorage) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", ErrTooLarge
	}

	ct := fh.Header.Get("Content-Type")
	if !strings.EqualFold(ct, "application/pdf") || !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return "", ErrNotPDF
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("cv-%s.pdf", uuid.NewString())
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return PublicCVPrefix + "/" + name, nil
}
