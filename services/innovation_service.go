package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"orbit-api/config"
	"orbit-api/models"
	"orbit-api/storage"

	"gorm.io/gorm"
)

// InnovationInput carries the editable fields for admin create/update.
// CategoryIDs replaces the category set. RetainImages lists existing storage
// keys to keep on update; together with newly uploaded files it forms the
// replacement image set, and when both are empty the image set is untouched.
type InnovationInput struct {
	Title                string
	Overview             string
	Features             string
	PotentialApplication string
	UniqueValue          string
	Origin               *string
	TiktokURL            *string
	InstagramURL         *string
	YoutubeURL           *string
	FacebookURL          *string
	WebURL               *string
	CategoryIDs          []int
	RetainImages         []string
}

// ListOptions filters the public catalog.
type ListOptions struct {
	CategoryID int
	Keyword    string
	OwnerID    int
	Limit      int
	Offset     int
}

// InnovationView is a catalog entry with image URLs resolved for display.
type InnovationView struct {
	models.Innovation
	ImageURLs []string `json:"image_urls"`
}

type InnovationService struct {
	db    *gorm.DB
	blobs storage.Store
}

func NewInnovationService(db *gorm.DB, blobs storage.Store) *InnovationService {
	if db == nil {
		db = config.DB
	}
	return &InnovationService{db: db, blobs: blobs}
}

func (s *InnovationService) resolve(items []models.Innovation) []InnovationView {
	out := make([]InnovationView, 0, len(items))
	for _, item := range items {
		v := InnovationView{Innovation: item}
		v.ImageURLs = make([]string, 0, len(item.Images))
		for _, img := range item.Images {
			v.ImageURLs = append(v.ImageURLs, s.blobs.PublicURL(img.StorageKey))
		}
		out = append(out, v)
	}
	return out
}

// List returns the catalog with optional category/keyword/owner filters.
func (s *InnovationService) List(ctx context.Context, opts ListOptions) ([]InnovationView, int64, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Innovation{}).Where("innovations.delete_at IS NULL")
	if opts.OwnerID > 0 {
		q = q.Where("innovations.user_id = ?", opts.OwnerID)
	}
	if opts.CategoryID > 0 {
		q = q.Joins("JOIN innovation_categories ic ON ic.innovation_id = innovations.innovation_id").
			Where("ic.category_id = ?", opts.CategoryID)
	}
	if kw := strings.TrimSpace(opts.Keyword); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("innovations.title LIKE ? OR innovations.overview LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Innovation
	err := q.Preload("Images").Preload("Categories").Preload("Owner").
		Order("innovations.create_at DESC, innovations.innovation_id DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return s.resolve(items), total, nil
}

// Get returns one innovation with images, categories, and owner preloaded.
func (s *InnovationService) Get(ctx context.Context, id int) (*InnovationView, error) {
	var item models.Innovation
	err := s.db.WithContext(ctx).
		Preload("Images").Preload("Categories").Preload("Owner").
		Where("innovation_id = ? AND delete_at IS NULL", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	views := s.resolve([]models.Innovation{item})
	return &views[0], nil
}

func validateInput(in *InnovationInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}
	for _, key := range in.RetainImages {
		if err := storage.ValidateKey(key); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}
	return nil
}

func (s *InnovationService) uploadAll(ctx context.Context, innovationID int, files []UploadFile) ([]string, error) {
	uploaded := make([]string, 0, len(files))
	for _, f := range files {
		key := storage.NewKey(fmt.Sprintf("innovations/%d", innovationID), f.Name)
		if err := s.blobs.Put(ctx, key, f.Reader, f.ContentType); err != nil {
			if len(uploaded) > 0 {
				if cleanupErr := s.blobs.Delete(ctx, uploaded); cleanupErr != nil {
					log.Printf("[Innovation] cleanup after failed upload: %v", cleanupErr)
				}
			}
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		uploaded = append(uploaded, key)
	}
	return uploaded, nil
}

// Create makes a new catalog entry owned by ownerID. Files are uploaded
// before any row is written.
func (s *InnovationService) Create(ctx context.Context, ownerID int, in InnovationInput, files []UploadFile) (*models.Innovation, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.WithContext(ctx).Where("user_id = ? AND delete_at IS NULL", ownerID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	item := models.Innovation{
		UserID:               ownerID,
		Title:                in.Title,
		Overview:             in.Overview,
		Features:             in.Features,
		PotentialApplication: in.PotentialApplication,
		UniqueValue:          in.UniqueValue,
		Origin:               in.Origin,
		TiktokURL:            in.TiktokURL,
		InstagramURL:         in.InstagramURL,
		YoutubeURL:           in.YoutubeURL,
		FacebookURL:          in.FacebookURL,
		WebURL:               in.WebURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return s.replaceCategories(tx, item.InnovationID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	// Image upload happens after the row exists so keys can carry the id;
	// a failed upload leaves a valid innovation without images.
	keys, err := s.uploadAll(ctx, item.InnovationID, files)
	if err != nil {
		return &item, err
	}
	for _, key := range keys {
		row := models.InnovationImage{InnovationID: item.InnovationID, StorageKey: key}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return &item, err
		}
	}
	return &item, nil
}

// Update is the direct admin edit path. It overwrites the editable fields,
// replaces the category set, and — when retained keys and/or new files are
// given — replaces the image set under the same non-empty-list policy the
// approval workflow uses.
func (s *InnovationService) Update(ctx context.Context, id int, in InnovationInput, files []UploadFile) (*models.Innovation, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var item models.Innovation
	if err := s.db.WithContext(ctx).Where("innovation_id = ? AND delete_at IS NULL", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newKeys, err := s.uploadAll(ctx, id, files)
	if err != nil {
		return nil, err
	}
	imageSet := append(append([]string{}, in.RetainImages...), newKeys...)

	var removedKeys []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item.Title = in.Title
		item.Overview = in.Overview
		item.Features = in.Features
		item.PotentialApplication = in.PotentialApplication
		item.UniqueValue = in.UniqueValue
		item.Origin = in.Origin
		item.TiktokURL = in.TiktokURL
		item.InstagramURL = in.InstagramURL
		item.YoutubeURL = in.YoutubeURL
		item.FacebookURL = in.FacebookURL
		item.WebURL = in.WebURL
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		if err := s.replaceCategories(tx, id, in.CategoryIDs); err != nil {
			return err
		}

		if len(imageSet) > 0 {
			var existing []models.InnovationImage
			if err := tx.Where("innovation_id = ?", id).Find(&existing).Error; err != nil {
				return err
			}
			if err := tx.Where("innovation_id = ?", id).Delete(&models.InnovationImage{}).Error; err != nil {
				return err
			}
			kept := make(map[string]bool, len(imageSet))
			for _, key := range imageSet {
				kept[key] = true
				row := models.InnovationImage{InnovationID: id, StorageKey: key}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			for _, img := range existing {
				if !kept[img.StorageKey] {
					removedKeys = append(removedKeys, img.StorageKey)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(removedKeys) > 0 {
		if err := s.blobs.Delete(ctx, removedKeys); err != nil {
			log.Printf("[Innovation] delete replaced blobs for innovation %d: %v", id, err)
		}
	}
	return &item, nil
}

func (s *InnovationService) replaceCategories(tx *gorm.DB, innovationID int, categoryIDs []int) error {
	if categoryIDs == nil {
		return nil
	}
	if err := tx.Where("innovation_id = ?", innovationID).Delete(&models.InnovationCategory{}).Error; err != nil {
		return err
	}
	seen := make(map[int]bool, len(categoryIDs))
	for _, cid := range categoryIDs {
		if cid <= 0 || seen[cid] {
			continue
		}
		seen[cid] = true
		var cat models.Category
		if err := tx.Where("category_id = ? AND delete_at IS NULL", cid).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %d", ErrInvalidPayload, cid)
			}
			return err
		}
		if err := tx.Create(&models.InnovationCategory{InnovationID: innovationID, CategoryID: cid}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete soft-deletes an innovation. Images and pending requests stay in
// place; the catalog and the review queue both filter on delete_at.
func (s *InnovationService) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Model(&models.Innovation{}).
		Where("innovation_id = ? AND delete_at IS NULL", id).
		Update("delete_at", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
