package composer

import (
	"sort"
	"sync"
	"time"

	domainAI "go-campzeo-client/src/domain/ai"
	"go-campzeo-client/src/domain/alert"
	domainCampaign "go-campzeo-client/src/domain/campaign"
	"go-campzeo-client/src/infrastructure/uploader"
)

// State is the step a composition session is in
type State string

const (
	StateEditing         State = "editing"
	StateAwaitingAIText  State = "awaiting_ai_text"
	StateAwaitingAIImage State = "awaiting_ai_image"
	StateSubmitting      State = "submitting"
)

type attachmentEntry struct {
	attachment domainCampaign.Attachment
	upload     uploader.Handle
	settled    bool
	failed     error
}

// Session is one post being composed for one platform of one campaign
type Session struct {
	mu sync.Mutex

	id             string
	campaign       domainCampaign.Campaign
	postID         string
	platform       domainCampaign.PlatformType
	platformLocked bool
	subject        string
	message        string
	scheduledAt    time.Time
	metadata       map[string]string
	attachments    []*attachmentEntry
	variations     []domainAI.Variation
	aiImageURL     string
	state          State
	alerts         []alert.Alert
	createdAt      time.Time
}

// View is the read model of a session
type View struct {
	ID                string                      `json:"id"`
	CampaignID        string                      `json:"campaignId"`
	CampaignName      string                      `json:"campaignName"`
	PostID            string                      `json:"postId,omitempty"`
	Platform          domainCampaign.PlatformType `json:"platform,omitempty"`
	PlatformLocked    bool                        `json:"platformLocked"`
	Subject           string                      `json:"subject"`
	Message           string                      `json:"message"`
	ScheduledPostTime *time.Time                  `json:"scheduledPostTime,omitempty"`
	Metadata          map[string]string           `json:"metadata"`
	Attachments       []domainCampaign.Attachment `json:"attachments"`
	Variations        []domainAI.Variation        `json:"variations"`
	AIImageURL        string                      `json:"aiImageUrl,omitempty"`
	State             State                       `json:"state"`
	Alerts            []alert.Alert               `json:"alerts"`
	CampaignStart     time.Time                   `json:"campaignStart"`
	CampaignEnd       time.Time                   `json:"campaignEnd"`
}

// view must be called with s.mu held
func (s *Session) view() *View {
	v := &View{
		ID:             s.id,
		CampaignID:     s.campaign.ID,
		CampaignName:   s.campaign.Name,
		PostID:         s.postID,
		Platform:       s.platform,
		PlatformLocked: s.platformLocked,
		Subject:        s.subject,
		Message:        s.message,
		Metadata:       make(map[string]string, len(s.metadata)),
		Attachments:    make([]domainCampaign.Attachment, 0, len(s.attachments)),
		Variations:     append([]domainAI.Variation{}, s.variations...),
		AIImageURL:     s.aiImageURL,
		State:          s.state,
		Alerts:         append([]alert.Alert{}, s.alerts...),
		CampaignStart:  s.campaign.StartDate,
		CampaignEnd:    s.campaign.EndDate,
	}
	if !s.scheduledAt.IsZero() {
		t := s.scheduledAt
		v.ScheduledPostTime = &t
	}
	for k, val := range s.metadata {
		v.Metadata[k] = val
	}
	for _, entry := range s.attachments {
		v.Attachments = append(v.Attachments, entry.attachment)
	}
	return v
}

func (s *Session) busy() bool {
	return s.state != StateEditing
}

func (s *Session) raise(err error, now time.Time) {
	s.alerts = append(s.alerts, alert.FromError(err, now))
}

func (s *Session) findAttachment(id string) int {
	for i, entry := range s.attachments {
		if entry.attachment.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) hasDigest(digest string) bool {
	if digest == "" {
		return false
	}
	for _, entry := range s.attachments {
		if entry.attachment.Digest == digest {
			return true
		}
	}
	return false
}

// mediaURLs must be called with s.mu held once every upload has settled
func (s *Session) mediaURLs() []string {
	urls := make([]string, 0, len(s.attachments))
	for _, entry := range s.attachments {
		if entry.attachment.Remote && !entry.attachment.Uploading {
			urls = append(urls, entry.attachment.URI)
		}
	}
	return urls
}

func (s *Session) pendingUploads() []*attachmentEntry {
	var pending []*attachmentEntry
	for _, entry := range s.attachments {
		if entry.upload != nil && !entry.settled {
			pending = append(pending, entry)
		}
	}
	return pending
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
