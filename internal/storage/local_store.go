package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
)

// LocalStore хранит файлы на локальном диске.
type LocalStore struct {
	rootPath       string
	maxUploadBytes int64
}

// NewLocalStore создаёт каталог хранилища, если его ещё нет.
func NewLocalStore(rootPath string, maxUploadBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &LocalStore{rootPath: rootPath, maxUploadBytes: maxUploadBytes}, nil
}

// Store пишет файл во временный файл и переименовывает его только после проверки размера.
func (s *LocalStore) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contentType, body, err := sniff(r)
	if err != nil {
		return "", err
	}

	ref := objectKey(suggestedName, time.Now())
	targetPath := filepath.Join(s.rootPath, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог: %w", err)
	}
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limited := io.LimitedReader{R: body, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", ErrTooLarge
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"ref": ref, "size": written, "content_type": contentType}).Debug("файл сохранён")
	return ref, nil
}

// Delete удаляет файл. Отсутствующий файл не считается ошибкой.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validRef(ref) {
		return fmt.Errorf("storage: недопустимая ссылка %q", ref)
	}
	target := filepath.Join(s.rootPath, filepath.FromSlash(ref))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}
