package media

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gabriel-vasile/mimetype"
	uuid "github.com/gofrs/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// MaxAttachmentBytes caps a single attachment
const MaxAttachmentBytes = 64 << 20

// Attachment kinds
const (
	KindImage    = "image"
	KindVideo    = "video"
	KindDocument = "document"
)

// File is a local media file ready to be uploaded
type File struct {
	Name     string
	Path     string
	MimeType string
	Kind     string
	Digest   string
	Data     []byte
}

// URI is the local URI shown while the upload is pending
func (f *File) URI() string {
	return "file://" + filepath.ToSlash(f.Path)
}

// ILibrary resolves and stages attachment files
type ILibrary interface {
	Open(relPath string) (*File, error)
	Stage(name string, r io.Reader) (*File, error)
	Release(file *File)
}

// Library reads attachments picked under a media root and stages uploaded
// blobs in a temp directory. Paths never escape either directory.
type Library struct {
	root   string
	tmpDir string
	Logger *logger.Logger
}

func NewLibrary(root string, tmpDir string, loggerInstance *logger.Logger) *Library {
	return &Library{root: root, tmpDir: tmpDir, Logger: loggerInstance}
}

// Open reads a file picked by its path relative to the media root
func (l *Library) Open(relPath string) (*File, error) {
	if l.root == "" {
		return nil, domainErrors.NewAppError(errors.New("media root is not configured"), domainErrors.ValidationError)
	}
	if strings.TrimSpace(relPath) == "" {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "path", Message: "Path is required"}})
	}

	fullPath, err := securejoin.SecureJoin(l.root, relPath)
	if err != nil {
		l.Logger.Error("Couldn't resolve media path", zap.Error(err), zap.String("path", relPath))
		return nil, domainErrors.NewAppError(err, domainErrors.ValidationError)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainErrors.NewAppError(fmt.Errorf("media file %q not found", relPath), domainErrors.NotFound)
		}
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	if info.IsDir() {
		return nil, domainErrors.NewAppError(fmt.Errorf("%q is a directory", relPath), domainErrors.ValidationError)
	}
	if info.Size() > MaxAttachmentBytes {
		return nil, tooLarge(filepath.Base(fullPath))
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	file := Describe(filepath.Base(fullPath), data)
	file.Path = fullPath
	return file, nil
}

// Stage copies an uploaded blob into the temp directory
func (l *Library) Stage(name string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxAttachmentBytes+1))
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	if len(data) > MaxAttachmentBytes {
		return nil, tooLarge(name)
	}
	if len(data) == 0 {
		return nil, domainErrors.NewValidationError([]domainErrors.FieldError{{Field: "file", Message: "File is empty"}})
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "attachment"
	}

	if err := os.MkdirAll(l.tmpDir, 0o700); err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	target, err := securejoin.SecureJoin(l.tmpDir, id.String()+"-"+base)
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		l.Logger.Error("Couldn't stage attachment", zap.Error(err), zap.String("path", target))
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	file := Describe(base, data)
	file.Path = target
	l.Logger.Debug("Staged attachment", zap.String("path", target), zap.String("mimeType", file.MimeType))
	return file, nil
}

// Release removes a staged copy. Files under the media root are left alone.
func (l *Library) Release(file *File) {
	if file == nil || file.Path == "" || l.tmpDir == "" {
		return
	}
	rel, err := filepath.Rel(l.tmpDir, file.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
		l.Logger.Warn("Couldn't remove staged attachment", zap.Error(err), zap.String("path", file.Path))
	}
}

// Describe classifies raw bytes
func Describe(name string, data []byte) *File {
	return &File{
		Name:     name,
		MimeType: mimetype.Detect(data).String(),
		Kind:     Kind(data),
		Digest:   Digest(data),
		Data:     data,
	}
}

// Kind tells images and videos apart from everything else
func Kind(data []byte) string {
	switch {
	case filetype.IsImage(data):
		return KindImage
	case filetype.IsVideo(data):
		return KindVideo
	default:
		return KindDocument
	}
}

// Digest fingerprints content so a session never uploads the same bytes twice
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func tooLarge(name string) error {
	return domainErrors.NewValidationError([]domainErrors.FieldError{{
		Field:   "file",
		Message: fmt.Sprintf("%s is larger than %d MB", name, MaxAttachmentBytes>>20),
	}})
}
