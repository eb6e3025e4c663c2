// Package storage хранит файлы сдачи работы на диске или в S3.
// Ссылка, которую возвращает Store, для остального кода непрозрачна.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

const sniffLen = 512

// ErrTooLarge: файл больше допустимого размера.
var ErrTooLarge = apperror.New(apperror.ErrCodeValidation, "размер файла превышает допустимый")

// sniff определяет MIME-тип по первым байтам и возвращает reader, который
// отдаёт файл целиком, включая прочитанный заголовок.
func sniff(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	contentType := "application/octet-stream"
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		contentType = kind.MIME.Value
	}
	return contentType, io.MultiReader(bytes.NewReader(head), r), nil
}

// objectKey строит ключ вида 2026/10/<uuid>.ext. Имя от клиента в ключ не попадает.
func objectKey(suggestedName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(sanitizeFilename(suggestedName)))
	if len(ext) > 10 {
		ext = ""
	}
	return path.Join(now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == "/" {
		name = "file"
	}
	return name
}

// validRef отсекает ссылки, выходящие за пределы хранилища.
func validRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "..") || strings.Contains(ref, "\\") {
		return false
	}
	return true
}
