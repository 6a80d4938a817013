package notification

type HiddenRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}
