package notification

import "time"

// Notification is an in-app notification
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page is one page of the notification feed
type Page struct {
	Items       []Notification `json:"items"`
	UnreadCount int            `json:"unreadCount"`
	Total       int            `json:"total"`
}
