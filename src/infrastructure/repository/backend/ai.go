package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	domainAI "go-campzeo-client/src/domain/ai"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// AIRepositoryInterface wraps the /ai generation endpoints
type AIRepositoryInterface interface {
	GenerateContent(ctx context.Context, req *domainAI.TextRequest) ([]domainAI.Variation, error)
	GenerateImage(ctx context.Context, req *domainAI.ImageRequest) ([]string, error)
}

type AIRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewAIRepository(client Caller, loggerInstance *logger.Logger) AIRepositoryInterface {
	return &AIRepository{Client: client, Logger: loggerInstance}
}

// GenerateContent returns whatever variations the backend produced; callers cap the count
func (r *AIRepository) GenerateContent(ctx context.Context, req *domainAI.TextRequest) ([]domainAI.Variation, error) {
	r.Logger.Info("Requesting AI content", zap.String("platform", string(req.Platform)), zap.Int("count", req.Count))
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, "/ai/generate-content", nil, req, &raw); err != nil {
		r.Logger.Error("Error generating AI content", zap.Error(err))
		return nil, err
	}

	list := gjson.ParseBytes(payload(raw, "variations", "contents", "content"))
	if !list.IsArray() {
		return nil, shapeError("ai content", errors.New("expected a list of variations"))
	}
	variations := make([]domainAI.Variation, 0, len(list.Array()))
	for _, item := range list.Array() {
		var v domainAI.Variation
		if item.Type == gjson.String {
			v.Content = item.String()
		} else {
			v.Subject = item.Get("subject").String()
			v.Content = firstNonEmpty(item.Get("content").String(), item.Get("message").String(), item.Get("body").String())
		}
		if v.Content == "" && v.Subject == "" {
			continue
		}
		variations = append(variations, v)
	}
	r.Logger.Info("AI content generated", zap.Int("variations", len(variations)))
	return variations, nil
}

func (r *AIRepository) GenerateImage(ctx context.Context, req *domainAI.ImageRequest) ([]string, error) {
	r.Logger.Info("Requesting AI image", zap.String("platform", string(req.Platform)))
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, "/ai/generate-image", nil, req, &raw); err != nil {
		r.Logger.Error("Error generating AI image", zap.Error(err))
		return nil, err
	}

	body := gjson.ParseBytes(payload(raw))
	var urls []string
	for _, path := range []string{"images", "imageUrls", "urls"} {
		if list := body.Get(path); list.IsArray() {
			for _, item := range list.Array() {
				u := item.String()
				if item.IsObject() {
					u = item.Get("url").String()
				}
				if u != "" {
					urls = append(urls, u)
				}
			}
			break
		}
	}
	if len(urls) == 0 {
		if u := firstString(raw, "imageUrl", "url"); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, shapeError("ai image", errors.New("no image url in response"))
	}
	return urls, nil
}
