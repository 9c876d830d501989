// Package storage stores uploaded avatar images on the local filesystem
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// avatarStorage implements avatar file storage on the local filesystem
type avatarStorage struct {
	basePath string
}

// NewAvatarStorage creates a new avatarStorage instance
func NewAvatarStorage(basePath string) *avatarStorage {
	return &avatarStorage{
		basePath: basePath,
	}
}

// Save writes an uploaded avatar to disk under a generated UUID name,
// preserving the original file extension. Returns the stored file name.
func (s *avatarStorage) Save(file io.Reader, originalFilename string) (string, error) {
	name := GenerateFileName(filepath.Ext(originalFilename))
	path := filepath.Join(s.basePath, name)

	// Ensure the directory exists
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Remove the partial file so a retry starts clean
		os.Remove(path)
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}

	return name, nil
}

// Delete removes a stored avatar file
func (s *avatarStorage) Delete(name string) error {
	return os.Remove(filepath.Join(s.basePath, name))
}

// GenerateFileName generates a new UUID-based file name with the provided extension
func GenerateFileName(extension string) string {
	newUUID := uuid.New().String()
	// Ensure extension starts with a dot if it doesn't already
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}
