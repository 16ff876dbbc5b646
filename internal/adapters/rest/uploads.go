package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"rentwise/internal/core/domain"
)

const (
	maxImageCount    = 10
	maxImageSize     = 5 << 20 // 5 MB per file
	maxMultipartMem  = 32 << 20
	payloadFormField = "payload"
	imagesFormField  = "images"
)

// ImageStore writes uploaded listing photos to local disk and hands back
// their public URL paths.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// saveAll validates and stores every uploaded image. Limits: at most
// maxImageCount files, maxImageSize each, image/* content types only.
func (s *ImageStore) saveAll(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > maxImageCount {
		ve := &domain.ValidationError{}
		ve.Add(imagesFormField, fmt.Sprintf("at most %d images are allowed", maxImageCount))
		return nil, ve
	}

	paths := make([]string, 0, len(files))
	for _, header := range files {
		path, err := s.saveOne(header)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *ImageStore) saveOne(header *multipart.FileHeader) (string, error) {
	ve := &domain.ValidationError{}
	if header.Size > maxImageSize {
		ve.Add(imagesFormField, fmt.Sprintf("%s exceeds the 5MB size limit", header.Filename))
		return "", ve
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Sniff the actual content instead of trusting the client header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		ve.Add(imagesFormField, fmt.Sprintf("%s is not an image", header.Filename))
		return "", ve
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	name := uuid.New().String() + strings.ToLower(ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return "/uploads/" + name, nil
}
