// utils/file.go
package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalAvatarStore writes avatars below Dir and serves them from URLPrefix.
// It is used when no R2 bucket is configured.
type LocalAvatarStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalAvatarStore(dir, urlPrefix string) (*LocalAvatarStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to ensure upload dir: %w", err)
	}
	return &LocalAvatarStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalAvatarStore) SaveAvatar(_ context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("illegal avatar key: %s", key)
	}
	if err := SaveFile(fileHeader, filepath.Join(s.Dir, filepath.FromSlash(clean))); err != nil {
		return "", err
	}
	return s.URLPrefix + "/" + clean, nil
}

// SaveFile saves the uploaded file to the given destination path
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	return err
}
