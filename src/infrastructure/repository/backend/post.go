package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	domainCampaign "go-campzeo-client/src/domain/campaign"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// Post is the wire shape of a campaign post
type Post struct {
	ID                ID              `json:"id" validate:"required"`
	CampaignID        ID              `json:"campaignId"`
	Subject           string          `json:"subject"`
	Message           string          `json:"message"`
	Type              string          `json:"type" validate:"required"`
	MediaURLs         []string        `json:"mediaUrls"`
	ScheduledPostTime Time            `json:"scheduledPostTime"`
	Metadata          json.RawMessage `json:"metadata"`
	Status            string          `json:"status"`
}

// ScheduledPost is an entry of GET /scheduled-posts
type ScheduledPost struct {
	ID                ID           `json:"id" validate:"required"`
	CampaignID        ID           `json:"campaignId"`
	CampaignName      string       `json:"campaignName"`
	Campaign          *campaignRef `json:"campaign"`
	Subject           string       `json:"subject"`
	Message           string       `json:"message"`
	Type              string       `json:"type" validate:"required"`
	ScheduledPostTime Time         `json:"scheduledPostTime"`
}

type campaignRef struct {
	Name string `json:"name"`
}

type postRequest struct {
	Subject           string   `json:"subject"`
	Message           string   `json:"message"`
	Type              string   `json:"type"`
	MediaURLs         []string `json:"mediaUrls"`
	ScheduledPostTime Time     `json:"scheduledPostTime"`
}

// PostRepositoryInterface wraps /campaigns/:id/posts and /scheduled-posts
type PostRepositoryInterface interface {
	GetAll(ctx context.Context, campaignID string) ([]domainCampaign.Post, error)
	GetByID(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error)
	Create(ctx context.Context, post *domainCampaign.Post) (*domainCampaign.Post, error)
	Update(ctx context.Context, post *domainCampaign.Post) (*domainCampaign.Post, error)
	Delete(ctx context.Context, campaignID string, postID string) error
	Send(ctx context.Context, campaignID string, postID string) error
	GetScheduled(ctx context.Context) ([]domainCampaign.ScheduledPost, error)
}

type PostRepository struct {
	Client Caller
	Logger *logger.Logger
}

func NewPostRepository(client Caller, loggerInstance *logger.Logger) PostRepositoryInterface {
	return &PostRepository{Client: client, Logger: loggerInstance}
}

func postsPath(campaignID string) string {
	return "/campaigns/" + escape(campaignID) + "/posts"
}

func (r *PostRepository) GetAll(ctx context.Context, campaignID string) ([]domainCampaign.Post, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, postsPath(campaignID), nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting posts", zap.Error(err), zap.String("campaignID", campaignID))
		return nil, err
	}
	posts, err := decodeList[Post](raw, "post list", "posts", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainCampaign.Post, len(posts))
	for i := range posts {
		out[i] = *posts[i].toDomainMapper(campaignID)
	}
	r.Logger.Info("Successfully retrieved posts", zap.String("campaignID", campaignID), zap.Int("count", len(out)))
	return out, nil
}

func (r *PostRepository) GetByID(ctx context.Context, campaignID string, postID string) (*domainCampaign.Post, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, postsPath(campaignID)+"/"+escape(postID), nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting post", zap.Error(err), zap.String("campaignID", campaignID), zap.String("postID", postID))
		return nil, err
	}
	post, err := decodeOne[Post](raw, "post", "post")
	if err != nil {
		return nil, err
	}
	return post.toDomainMapper(campaignID), nil
}

func (r *PostRepository) Create(ctx context.Context, post *domainCampaign.Post) (*domainCampaign.Post, error) {
	body, err := postBody(post)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Creating post",
		zap.String("campaignID", post.CampaignID),
		zap.String("platform", string(post.Type)),
		zap.Time("scheduledPostTime", post.ScheduledPostTime))

	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPost, postsPath(post.CampaignID), nil, body, &raw); err != nil {
		r.Logger.Error("Error creating post", zap.Error(err), zap.String("campaignID", post.CampaignID))
		return nil, err
	}
	created, err := decodeOne[Post](raw, "post", "post")
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Successfully created post", zap.String("campaignID", post.CampaignID), zap.String("postID", created.ID.String()))
	return created.toDomainMapper(post.CampaignID), nil
}

func (r *PostRepository) Update(ctx context.Context, post *domainCampaign.Post) (*domainCampaign.Post, error) {
	if post.ID == "" {
		return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	body, err := postBody(post)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("Updating post", zap.String("campaignID", post.CampaignID), zap.String("postID", post.ID))

	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodPut, postsPath(post.CampaignID)+"/"+escape(post.ID), nil, body, &raw); err != nil {
		r.Logger.Error("Error updating post", zap.Error(err), zap.String("campaignID", post.CampaignID), zap.String("postID", post.ID))
		return nil, err
	}
	updated, err := decodeOne[Post](raw, "post", "post")
	if err != nil {
		return nil, err
	}
	return updated.toDomainMapper(post.CampaignID), nil
}

func (r *PostRepository) Delete(ctx context.Context, campaignID string, postID string) error {
	if err := r.Client.Do(ctx, http.MethodDelete, postsPath(campaignID)+"/"+escape(postID), nil, nil, nil); err != nil {
		r.Logger.Error("Error deleting post", zap.Error(err), zap.String("campaignID", campaignID), zap.String("postID", postID))
		return err
	}
	r.Logger.Info("Successfully deleted post", zap.String("campaignID", campaignID), zap.String("postID", postID))
	return nil
}

func (r *PostRepository) Send(ctx context.Context, campaignID string, postID string) error {
	if err := r.Client.Do(ctx, http.MethodPost, postsPath(campaignID)+"/"+escape(postID)+"/send", nil, nil, nil); err != nil {
		r.Logger.Error("Error sending post", zap.Error(err), zap.String("campaignID", campaignID), zap.String("postID", postID))
		return err
	}
	r.Logger.Info("Post sent", zap.String("campaignID", campaignID), zap.String("postID", postID))
	return nil
}

func (r *PostRepository) GetScheduled(ctx context.Context) ([]domainCampaign.ScheduledPost, error) {
	var raw json.RawMessage
	if err := r.Client.Do(ctx, http.MethodGet, "/scheduled-posts", nil, nil, &raw); err != nil {
		r.Logger.Error("Error getting scheduled posts", zap.Error(err))
		return nil, err
	}
	posts, err := decodeList[ScheduledPost](raw, "scheduled post list", "posts", "scheduledPosts", "items")
	if err != nil {
		return nil, err
	}
	out := make([]domainCampaign.ScheduledPost, len(posts))
	for i, p := range posts {
		name := p.CampaignName
		if name == "" && p.Campaign != nil {
			name = p.Campaign.Name
		}
		out[i] = domainCampaign.ScheduledPost{
			ID:                p.ID.String(),
			CampaignID:        p.CampaignID.String(),
			CampaignName:      name,
			Subject:           p.Subject,
			Message:           p.Message,
			Type:              domainCampaign.PlatformType(strings.ToUpper(p.Type)),
			ScheduledPostTime: p.ScheduledPostTime.Time,
		}
	}
	return out, nil
}

// postBody renders the create/update payload; metadata keys are written in a
// stable order under "metadata".
func postBody(post *domainCampaign.Post) ([]byte, error) {
	mediaURLs := post.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	body, err := json.Marshal(postRequest{
		Subject:           post.Subject,
		Message:           post.Message,
		Type:              string(post.Type),
		MediaURLs:         mediaURLs,
		ScheduledPostTime: Time{post.ScheduledPostTime},
	})
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}

	body, err = sjson.SetRawBytes(body, "metadata", []byte("{}"))
	if err != nil {
		return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
	}
	keys := make([]string, 0, len(post.Metadata))
	for key, value := range post.Metadata {
		if value != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		body, err = sjson.SetBytes(body, "metadata."+metadataPath(key), post.Metadata[key])
		if err != nil {
			return nil, domainErrors.NewAppError(err, domainErrors.UnknownError)
		}
	}
	return body, nil
}

var metadataPathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func metadataPath(key string) string {
	return metadataPathEscaper.Replace(key)
}

func (p *Post) toDomainMapper(campaignID string) *domainCampaign.Post {
	if p.CampaignID != "" {
		campaignID = p.CampaignID.String()
	}
	metadata := map[string]string{}
	if len(p.Metadata) > 0 {
		gjson.ParseBytes(p.Metadata).ForEach(func(key, value gjson.Result) bool {
			metadata[key.String()] = value.String()
			return true
		})
	}
	return &domainCampaign.Post{
		ID:                p.ID.String(),
		CampaignID:        campaignID,
		Subject:           p.Subject,
		Message:           p.Message,
		Type:              domainCampaign.PlatformType(strings.ToUpper(p.Type)),
		MediaURLs:         p.MediaURLs,
		ScheduledPostTime: p.ScheduledPostTime.Time,
		Metadata:          metadata,
		Status:            p.Status,
	}
}
