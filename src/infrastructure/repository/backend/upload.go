package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	logger "go-campzeo-client/src/infrastructure/logger"

	"go.uber.org/zap"
)

// UploadTicket is the answer of POST /upload: a client token that authorises
// one direct upload to the blob store.
type UploadTicket struct {
	ClientToken string `json:"clientToken" validate:"required"`
	UploadURL   string `json:"uploadUrl" validate:"required,url"`
	URL         string `json:"url" validate:"omitempty,url"`
}

type uploadRequest struct {
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// UploadRepositoryInterface wraps POST /upload and the direct blob PUT
type UploadRepositoryInterface interface {
	RequestTicket(ctx context.Context, name string, contentType string, size int) (*UploadTicket, error)
	Put(ctx context.Context, ticket *UploadTicket, contentType string, data []byte) (string, error)
}

type UploadRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewUploadRepository(client Caller, loggerInstance *logger.Logger) UploadRepositoryInterface {
	return &UploadRepository{Client: client, Logger: loggerInstance}
}

func (r *UploadRepository) RequestTicket(ctx context.Context, name string, contentType string, size int) (*UploadTicket, error) {
	var raw json.RawMessage
	body := &uploadRequest{Pathname: name, ContentType: contentType, Size: size}
	if err := r.Client.Do(ctx, http.MethodPost, "/upload", nil, body, &raw); err != nil {
		r.Logger.Error("Error requesting upload token", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return decodeOne[UploadTicket](raw, "upload token")
}

// Put sends the bytes and returns the public URL of the stored media
func (r *UploadRepository) Put(ctx context.Context, ticket *UploadTicket, contentType string, data []byte) (string, error) {
	var raw json.RawMessage
	if err := r.Client.PutBytes(ctx, ticket.UploadURL, ticket.ClientToken, contentType, data, &raw); err != nil {
		r.Logger.Error("Error uploading media", zap.Error(err))
		return "", err
	}
	remote := ""
	if len(raw) > 0 {
		remote = firstString(raw, "url", "downloadUrl")
	}
	if remote == "" {
		remote = ticket.URL
	}
	if remote == "" {
		return "", shapeError("upload", errors.New("no media url returned"))
	}
	r.Logger.Info("Media uploaded", zap.String("url", remote), zap.Int("bytes", len(data)))
	return remote, nil
}
