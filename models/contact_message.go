package models

import "time"

// Contact message handling states.
const (
	ContactNew     = "new"
	ContactHandled = "handled"
)

// ContactMessage is a message from the public contact form. At most one
// unhandled message per sender email is kept; repeat submissions are rejected
// until an admin marks the previous one handled.
type ContactMessage struct {
	MessageID int        `gorm:"primaryKey;column:message_id" json:"message_id"`
	Name      string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string     `gorm:"column:email;type:varchar(255);not null;index" json:"email"`
	Subject   string     `gorm:"column:subject;type:varchar(500)" json:"subject"`
	Body      string     `gorm:"column:body;type:text;not null" json:"body"`
	Status    string     `gorm:"column:status;type:varchar(32);default:new" json:"status"`
	CreateAt  time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	HandledAt *time.Time `gorm:"column:handled_at" json:"handled_at,omitempty"`
}

// TableName specifies the table name for ContactMessage.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
