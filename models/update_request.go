package models

import "time"

// Update-request lifecycle. Transitions are pending -> approved or
// pending -> rejected only; both end states are terminal.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// UpdateRequestPayload is the proposed edit carried by an update request.
// Narrative and link fields fully overwrite the innovation's current values on
// approval; the submission form always posts every editable field.
//
// Images lists the storage keys the innovation should end up with (retained
// existing keys plus freshly uploaded ones). A non-empty list replaces the
// innovation's whole image set on approval; an empty or absent list means the
// image set is left untouched.
type UpdateRequestPayload struct {
	Overview             string `json:"overview"`
	Features             string `json:"features"`
	PotentialApplication string `json:"potential_application"`
	UniqueValue          string `json:"unique_value"`

	Origin       *string `json:"origin,omitempty"`
	TiktokURL    *string `json:"tiktok_url,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty"`
	YoutubeURL   *string `json:"youtube_url,omitempty"`
	FacebookURL  *string `json:"facebook_url,omitempty"`
	WebURL       *string `json:"web_url,omitempty"`

	Images []string `json:"images,omitempty"`
}

// InnovationUpdateRequest is a proposed edit to an innovation awaiting an
// admin decision. Rows are never deleted; resolved requests remain as an
// audit trail.
type InnovationUpdateRequest struct {
	RequestID    int                  `gorm:"primaryKey;column:request_id" json:"request_id"`
	InnovationID int                  `gorm:"column:innovation_id;not null;index" json:"innovation_id"`
	UserID       int                  `gorm:"column:user_id;not null;index" json:"user_id"`
	Payload      UpdateRequestPayload `gorm:"column:payload;type:json;serializer:json" json:"payload"`
	Status       string               `gorm:"column:status;type:varchar(32);default:pending;index" json:"status"`
	SubmittedAt  time.Time            `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	ResolvedAt   *time.Time           `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	// Relations
	Innovation *Innovation `gorm:"foreignKey:InnovationID" json:"innovation,omitempty"`
	Submitter  *User       `gorm:"foreignKey:UserID" json:"submitter,omitempty"`
}

// TableName specifies the table name for InnovationUpdateRequest.
func (InnovationUpdateRequest) TableName() string {
	return "innovation_update_requests"
}

func (r *InnovationUpdateRequest) IsResolved() bool {
	return r.Status != RequestPending
}
