package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"orbit-api/config"
	"orbit-api/models"
	"orbit-api/utils"

	"gorm.io/gorm"
)

// ErrDuplicateMessage means the sender already has an unhandled message in
// the inbox. Unlike update requests, the contact flow deduplicates by email.
var ErrDuplicateMessage = errors.New("an unhandled message from this email already exists")

type ContactService struct {
	db *gorm.DB

	// Notify is called after a message is stored. Defaults to an SMTP
	// notification to the admin inbox; tests replace it.
	Notify func(msg *models.ContactMessage) error
}

func NewContactService(db *gorm.DB) *ContactService {
	if db == nil {
		db = config.DB
	}
	s := &ContactService{db: db}
	s.Notify = s.notifyByMail
	return s
}

func (s *ContactService) notifyByMail(msg *models.ContactMessage) error {
	inbox := config.AdminInbox()
	if inbox == "" {
		return nil
	}
	body := fmt.Sprintf("<p><b>%s</b> (%s)</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Body))
	return config.SendMail([]string{inbox}, "New contact message: "+msg.Subject, body)
}

// Submit stores a contact-form message. A second submission from the same
// email while the first is still unhandled is rejected.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, body string) (*models.ContactMessage, error) {
	name = utils.SanitizeInput(name)
	email = strings.ToLower(utils.SanitizeInput(email))
	subject = utils.SanitizeInput(subject)
	body = utils.SanitizeInput(body)

	if name == "" || body == "" {
		return nil, fmt.Errorf("%w: name and message are required", ErrInvalidPayload)
	}
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidPayload)
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("email = ? AND status = ?", email, models.ContactNew).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateMessage
	}

	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Body:    body,
		Status:  models.ContactNew,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}

	if s.Notify != nil {
		if err := s.Notify(&msg); err != nil {
			// The message is already stored; a notification failure is
			// not surfaced to the sender.
			fmt.Fprintln(config.LogWriter, "contact notification failed:", err)
		}
	}
	return &msg, nil
}

// List returns inbox messages, optionally filtered by status, newest first.
func (s *ContactService) List(ctx context.Context, status string, limit, offset int) ([]models.ContactMessage, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.ContactMessage
	if err := q.Order("create_at DESC, message_id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkHandled closes a message so its sender can write again.
func (s *ContactService) MarkHandled(ctx context.Context, messageID int) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("message_id = ? AND status = ?", messageID, models.ContactNew).
		Updates(map[string]interface{}{"status": models.ContactHandled, "handled_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
