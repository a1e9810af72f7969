package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"orbit-api/config"
	"orbit-api/models"
	"orbit-api/storage"
	"orbit-api/utils"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced request or innovation does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStateConflict means the request was already approved or rejected.
	ErrStateConflict = errors.New("request already resolved")
	// ErrNotOwner means the submitter is not the innovation's recorded owner.
	ErrNotOwner = errors.New("submitter does not own this innovation")
	// ErrInvalidPayload means the proposed edit failed validation.
	ErrInvalidPayload = errors.New("invalid payload")
)

// UploadFile is a new image carried with a submission. Existing keys the
// innovator wants to keep travel in the payload's Images list instead.
type UploadFile struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// PendingRequest is one review-queue entry: the request joined with display
// context and its image keys resolved to public URLs.
type PendingRequest struct {
	models.InnovationUpdateRequest
	InnovationTitle string   `json:"innovation_title"`
	SubmitterName   string   `json:"submitter_name"`
	ImageURLs       []string `json:"image_urls"`
}

// UpdateRequestService implements the innovation update-request workflow:
// innovators submit proposed edits, admins approve or reject them, and only
// an approval writes to the live innovation.
type UpdateRequestService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewUpdateRequestService(db *gorm.DB, blobs storage.Store) *UpdateRequestService {
	if db == nil {
		db = config.DB
	}
	return &UpdateRequestService{db: db, blobs: blobs}
}

func validatePayload(p *models.UpdateRequestPayload) error {
	p.Overview = strings.TrimSpace(p.Overview)
	p.Features = strings.TrimSpace(p.Features)
	p.PotentialApplication = strings.TrimSpace(p.PotentialApplication)
	p.UniqueValue = strings.TrimSpace(p.UniqueValue)

	if p.Overview == "" || p.Features == "" || p.PotentialApplication == "" || p.UniqueValue == "" {
		return fmt.Errorf("%w: all narrative fields are required", ErrInvalidPayload)
	}
	links := []struct {
		name  string
		value *string
	}{
		{"tiktok_url", p.TiktokURL},
		{"instagram_url", p.InstagramURL},
		{"youtube_url", p.YoutubeURL},
		{"facebook_url", p.FacebookURL},
		{"web_url", p.WebURL},
	}
	for _, l := range links {
		if l.value != nil && !utils.ValidateURL(strings.TrimSpace(*l.value)) {
			return fmt.Errorf("%w: invalid %s", ErrInvalidPayload, l.name)
		}
	}
	for _, key := range p.Images {
		if err := storage.ValidateKey(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return nil
}

// Submit records a proposed edit as a pending request. New files are uploaded
// to the blob store first; only when every upload succeeded is the single
// request row inserted, so a failed upload leaves no partial request behind.
// The live innovation is never touched here.
func (s *UpdateRequestService) Submit(ctx context.Context, submitterID, innovationID int, payload models.UpdateRequestPayload, files []UploadFile) (*models.InnovationUpdateRequest, error) {
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	var innovation models.Innovation
	err := s.db.WithContext(ctx).
		Where("innovation_id = ? AND delete_at IS NULL", innovationID).
		First(&innovation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if innovation.UserID != submitterID {
		return nil, ErrNotOwner
	}

	// Upload everything before writing the row. On any failure the keys
	// uploaded so far are removed again and the submission aborts.
	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		key := storage.NewKey(fmt.Sprintf("innovations/%d", innovationID), f.Name)
		if err := s.blobs.Put(ctx, key, f.Reader, f.ContentType); err != nil {
			if len(uploaded) > 0 {
				if cleanupErr := s.blobs.Delete(ctx, uploaded); cleanupErr != nil {
					log.Printf("[UpdateRequest] cleanup after failed upload: %v", cleanupErr)
				}
			}
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		uploaded = append(uploaded, key)
	}
	payload.Images = append(payload.Images, uploaded...)

	request := models.InnovationUpdateRequest{
		InnovationID: innovationID,
		UserID:       submitterID,
		Payload:      payload,
		Status:       models.RequestPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		if len(uploaded) > 0 {
			if cleanupErr := s.blobs.Delete(ctx, uploaded); cleanupErr != nil {
				log.Printf("[UpdateRequest] cleanup after failed insert: %v", cleanupErr)
			}
		}
		return nil, err
	}
	return &request, nil
}

// ListPending returns the moderation queue oldest-first, with innovation
// title, submitter name, and image URLs resolved for display. URLs are
// recomputed on every call; nothing is cached. Requests whose innovation
// has been soft-deleted are left out of the queue.
func (s *UpdateRequestService) ListPending(ctx context.Context) ([]PendingRequest, error) {
	var requests []models.InnovationUpdateRequest
	err := s.db.WithContext(ctx).
		Preload("Innovation").
		Preload("Submitter").
		Joins("JOIN innovations ON innovations.innovation_id = innovation_update_requests.innovation_id AND innovations.delete_at IS NULL").
		Where("innovation_update_requests.status = ?", models.RequestPending).
		Order("innovation_update_requests.submitted_at ASC, innovation_update_requests.request_id ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	out := make([]PendingRequest, 0, len(requests))
	for _, r := range requests {
		entry := PendingRequest{InnovationUpdateRequest: r}
		if r.Innovation != nil {
			entry.InnovationTitle = r.Innovation.Title
		}
		if r.Submitter != nil {
			entry.SubmitterName = r.Submitter.FullName
		}
		entry.ImageURLs = make([]string, 0, len(r.Payload.Images))
		for _, key := range r.Payload.Images {
			entry.ImageURLs = append(entry.ImageURLs, s.blobs.PublicURL(key))
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListByUser returns a submitter's own requests, newest first.
func (s *UpdateRequestService) ListByUser(ctx context.Context, userID, limit, offset int) ([]models.InnovationUpdateRequest, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).
		Model(&models.InnovationUpdateRequest{}).
		Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InnovationUpdateRequest
	err := q.Preload("Innovation").
		Order("submitted_at DESC, request_id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Approve merges a pending request into its innovation and resolves it, all
// inside one transaction: narrative and link fields are overwritten with the
// payload, and when the payload carries a non-empty image list the
// innovation's image rows are replaced wholesale. An empty or absent list
// leaves the image set untouched. Replaced blob keys are deleted from the
// store only after the transaction commits.
func (s *UpdateRequestService) Approve(ctx context.Context, requestID int) (*models.InnovationUpdateRequest, error) {
	var request models.InnovationUpdateRequest
	var removedKeys []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "request_id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.IsResolved() {
			return ErrStateConflict
		}

		var innovation models.Innovation
		if err := tx.First(&innovation, "innovation_id = ? AND delete_at IS NULL", request.InnovationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		p := request.Payload
		innovation.Overview = p.Overview
		innovation.Features = p.Features
		innovation.PotentialApplication = p.PotentialApplication
		innovation.UniqueValue = p.UniqueValue
		innovation.Origin = p.Origin
		innovation.TiktokURL = p.TiktokURL
		innovation.InstagramURL = p.InstagramURL
		innovation.YoutubeURL = p.YoutubeURL
		innovation.FacebookURL = p.FacebookURL
		innovation.WebURL = p.WebURL

		if err := tx.Save(&innovation).Error; err != nil {
			return err
		}

		if len(p.Images) > 0 {
			var existing []models.InnovationImage
			if err := tx.Where("innovation_id = ?", innovation.InnovationID).Find(&existing).Error; err != nil {
				return err
			}

			if err := tx.Where("innovation_id = ?", innovation.InnovationID).
				Delete(&models.InnovationImage{}).Error; err != nil {
				return err
			}
			for _, key := range p.Images {
				row := models.InnovationImage{InnovationID: innovation.InnovationID, StorageKey: key}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}

			kept := make(map[string]bool, len(p.Images))
			for _, key := range p.Images {
				kept[key] = true
			}
			for _, img := range existing {
				if !kept[img.StorageKey] {
					removedKeys = append(removedKeys, img.StorageKey)
				}
			}
		}

		// Conditional flip guards against a concurrent resolve of the
		// same request; losing the race rolls everything back.
		now := time.Now()
		res := tx.Model(&models.InnovationUpdateRequest{}).
			Where("request_id = ? AND status = ?", requestID, models.RequestPending).
			Updates(map[string]interface{}{"status": models.RequestApproved, "resolved_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}
		request.Status = models.RequestApproved
		request.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Object stores cannot join the SQL transaction; a failure here leaves
	// orphan blobs, never inconsistent rows.
	if len(removedKeys) > 0 {
		if err := s.blobs.Delete(ctx, removedKeys); err != nil {
			log.Printf("[UpdateRequest] delete replaced blobs for request %d: %v", requestID, err)
		}
	}

	return &request, nil
}

// Reject resolves a pending request without touching the innovation or its
// images. Only the request's own status and resolution time change.
func (s *UpdateRequestService) Reject(ctx context.Context, requestID int) (*models.InnovationUpdateRequest, error) {
	var request models.InnovationUpdateRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, "request_id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.IsResolved() {
			return ErrStateConflict
		}

		now := time.Now()
		res := tx.Model(&models.InnovationUpdateRequest{}).
			Where("request_id = ? AND status = ?", requestID, models.RequestPending).
			Updates(map[string]interface{}{"status": models.RequestRejected, "resolved_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}
		request.Status = models.RequestRejected
		request.ResolvedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}
