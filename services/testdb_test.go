package services

import (
	"fmt"
	"testing"

	"orbit-api/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Innovation{},
		&models.InnovationImage{},
		&models.InnovationCategory{},
		&models.InnovationUpdateRequest{},
		&models.News{},
		&models.Event{},
		&models.CarouselItem{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, roleID int) *models.User {
	t.Helper()
	user := models.User{
		FullName:      name,
		Email:         fmt.Sprintf("%s@example.com", uuid.NewString()),
		Password:      "x",
		RoleID:        roleID,
		AccountStatus: models.AccountActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedInnovation(t *testing.T, db *gorm.DB, ownerID int, title string, imageKeys ...string) *models.Innovation {
	t.Helper()
	item := models.Innovation{
		UserID:               ownerID,
		Title:                title,
		Overview:             "original overview",
		Features:             "original features",
		PotentialApplication: "original application",
		UniqueValue:          "original value",
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed innovation: %v", err)
	}
	for _, key := range imageKeys {
		img := models.InnovationImage{InnovationID: item.InnovationID, StorageKey: key}
		if err := db.Create(&img).Error; err != nil {
			t.Fatalf("seed image: %v", err)
		}
	}
	return &item
}

func imageKeys(t *testing.T, db *gorm.DB, innovationID int) []string {
	t.Helper()
	var rows []models.InnovationImage
	if err := db.Where("innovation_id = ?", innovationID).Order("image_id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("load images: %v", err)
	}
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.StorageKey)
	}
	return keys
}
