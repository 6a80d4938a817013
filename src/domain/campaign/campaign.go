package campaign

import (
	"strings"
	"time"
)

// PlatformType is the destination a post targets
type PlatformType string

const (
	SMS       PlatformType = "SMS"
	Email     PlatformType = "EMAIL"
	WhatsApp  PlatformType = "WHATSAPP"
	Instagram PlatformType = "INSTAGRAM"
	Facebook  PlatformType = "FACEBOOK"
	YouTube   PlatformType = "YOUTUBE"
	LinkedIn  PlatformType = "LINKEDIN"
	Pinterest PlatformType = "PINTEREST"
)

// AllPlatforms lists every platform in display order
var AllPlatforms = []PlatformType{SMS, Email, WhatsApp, Instagram, Facebook, YouTube, LinkedIn, Pinterest}

// ParsePlatform accepts any casing of a known platform name
func ParsePlatform(value string) (PlatformType, bool) {
	p := PlatformType(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range AllPlatforms {
		if known == p {
			return p, true
		}
	}
	return "", false
}

// IsVirtual reports platforms that need no linked social account
func (p PlatformType) IsVirtual() bool {
	return p == SMS || p == Email || p == WhatsApp
}

// Metadata keys understood by the backend
const (
	MetaBoardID     = "boardId"
	MetaBoardName   = "boardName"
	MetaLink        = "link"
	MetaPageID      = "pageId"
	MetaPageName    = "pageName"
	MetaSenderEmail = "senderEmail"
)

// Campaign is a named marketing effort with a date range. StartDate and
// EndDate are calendar dates: only their year, month and day are meaningful.
type Campaign struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ContactIDs  []string
	CreatedAt   time.Time
}

// Contains reports whether t falls inside [StartDate, end of EndDate's day],
// with both days placed in loc
func (c *Campaign) Contains(t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	start := DayIn(c.StartDate, loc)
	end := DayIn(c.EndDate, loc).AddDate(0, 0, 1)
	local := t.In(loc)
	return !local.Before(start) && local.Before(end)
}

// DayIn returns midnight in loc of the calendar date t was written with
func DayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Post is a single piece of content scheduled for one platform within a campaign
type Post struct {
	ID                string
	CampaignID        string
	Subject           string
	Message           string
	Type              PlatformType
	MediaURLs         []string
	ScheduledPostTime time.Time
	Metadata          map[string]string
	Status            string
}

// ScheduledPost is an entry of the backend's scheduled-post feed
type ScheduledPost struct {
	ID                string
	CampaignID        string
	CampaignName      string
	Subject           string
	Message           string
	Type              PlatformType
	ScheduledPostTime time.Time
}

// CalendarEvent is the calendar view-model for one scheduled post
type CalendarEvent struct {
	ID         string       `json:"id"`
	CampaignID string       `json:"campaignId"`
	Title      string       `json:"title"`
	Subject    string       `json:"subject"`
	Platform   PlatformType `json:"platform"`
	Start      time.Time    `json:"start"`
	End        time.Time    `json:"end"`
}

// DateBucket groups the events of a single local calendar date
type DateBucket struct {
	Date   string          `json:"date"`
	Events []CalendarEvent `json:"events"`
}

// Form is the campaign create/edit schema
type Form struct {
	Name        string    `json:"name" validate:"required,min=3"`
	Description string    `json:"description" validate:"required,min=5"`
	StartDate   time.Time `json:"startDate" validate:"required,not_past"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	ContactIDs  []string  `json:"contactIds"`
}

// Attachment is a media item picked while composing a post. It only lives for
// the composition session; the submitted post keeps the remote URL alone.
type Attachment struct {
	ID        string `json:"id"`
	URI       string `json:"uri"`
	Name      string `json:"name"`
	MimeType  string `json:"mimeType"`
	Kind      string `json:"kind"`
	Uploading bool   `json:"uploading"`
	Remote    bool   `json:"remote"`
	Digest    string `json:"-"`
}
