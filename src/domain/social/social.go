package social

import (
	"go-campzeo-client/src/domain/campaign"
)

// Connection is the link state of one platform
type Connection struct {
	Connected bool   `json:"connected"`
	Name      string `json:"name,omitempty"`
}

// Status maps every platform to its connection state
type Status map[campaign.PlatformType]Connection

// IsConnected reports whether posts may target the platform.
// SMS, EMAIL and WHATSAPP need no linked account and are always connected.
func (s Status) IsConnected(platform campaign.PlatformType) bool {
	if platform.IsVirtual() {
		return true
	}
	conn, ok := s[platform]
	return ok && conn.Connected
}

// Clone returns an independent copy
func (s Status) Clone() Status {
	out := make(Status, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// PinterestBoard is a board a Pinterest post can be pinned to
type PinterestBoard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// BoardForm is the Pinterest board creation schema
type BoardForm struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// FacebookPage is a page a Facebook post can be published on
type FacebookPage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
