package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"orbit-api/models"
	"orbit-api/storage"
)

func TestInnovationCreateWithCategoriesAndImages(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewInnovationService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	agri := models.Category{CategoryName: "Agritech"}
	if err := db.Create(&agri).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	in := InnovationInput{
		Title:       "Drip Irrigation Controller",
		Overview:    "controls drip lines",
		CategoryIDs: []int{agri.CategoryID},
	}
	files := []UploadFile{{Name: "photo.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("jpg")}}

	item, err := svc.Create(ctx, owner.UserID, in, files)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.Get(ctx, item.InnovationID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Categories) != 1 || view.Categories[0].CategoryID != agri.CategoryID {
		t.Errorf("categories = %+v", view.Categories)
	}
	if len(view.ImageURLs) != 1 {
		t.Fatalf("image urls = %v, want 1", view.ImageURLs)
	}
	if keys := imageKeys(t, db, item.InnovationID); len(keys) != 1 || !blobs.Has(keys[0]) {
		t.Errorf("image rows/blobs inconsistent: %v", keys)
	}
}

func TestInnovationCreateRejectsUnknownOwnerAndCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewInnovationService(db, storage.NewMemory())
	ctx := context.Background()

	if _, err := svc.Create(ctx, 9999, InnovationInput{Title: "X"}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown owner err = %v, want ErrNotFound", err)
	}

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	_, err := svc.Create(ctx, owner.UserID, InnovationInput{Title: "X", CategoryIDs: []int{42}}, nil)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("unknown category err = %v, want ErrInvalidPayload", err)
	}
}

func TestInnovationUpdateReplacesImagesUnderNonEmptyPolicy(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewInnovationService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	item := seedInnovation(t, db, owner.UserID, "Seaweed Dryer", "k1", "k2")
	blobs.Put(ctx, "k1", strings.NewReader("1"), "image/png")
	blobs.Put(ctx, "k2", strings.NewReader("2"), "image/png")

	// No retained keys, no files: image set untouched.
	in := InnovationInput{Title: "Seaweed Dryer v2", Overview: "updated"}
	if _, err := svc.Update(ctx, item.InnovationID, in, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if keys := imageKeys(t, db, item.InnovationID); len(keys) != 2 {
		t.Fatalf("images = %v, want untouched pair", keys)
	}

	// Retaining only k2 drops k1 from rows and blobs.
	in.RetainImages = []string{"k2"}
	if _, err := svc.Update(ctx, item.InnovationID, in, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	if keys := imageKeys(t, db, item.InnovationID); len(keys) != 1 || keys[0] != "k2" {
		t.Fatalf("images = %v, want [k2]", keys)
	}
	if blobs.Has("k1") || !blobs.Has("k2") {
		t.Errorf("blob store not reconciled: k1=%v k2=%v", blobs.Has("k1"), blobs.Has("k2"))
	}

	var reloaded models.Innovation
	db.First(&reloaded, item.InnovationID)
	if reloaded.Title != "Seaweed Dryer v2" || reloaded.Overview != "updated" {
		t.Errorf("fields not updated: %+v", reloaded)
	}
}

func TestInnovationListFiltersByCategoryAndKeyword(t *testing.T) {
	db := newTestDB(t)
	svc := NewInnovationService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	agri := models.Category{CategoryName: "Agritech"}
	health := models.Category{CategoryName: "Health"}
	if err := db.Create(&agri).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.Create(&health).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	a := seedInnovation(t, db, owner.UserID, "Rice Transplanter")
	b := seedInnovation(t, db, owner.UserID, "Portable ECG")
	db.Create(&models.InnovationCategory{InnovationID: a.InnovationID, CategoryID: agri.CategoryID})
	db.Create(&models.InnovationCategory{InnovationID: b.InnovationID, CategoryID: health.CategoryID})

	items, total, err := svc.List(ctx, ListOptions{CategoryID: agri.CategoryID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].InnovationID != a.InnovationID {
		t.Errorf("category filter: total=%d items=%+v", total, items)
	}

	items, total, err = svc.List(ctx, ListOptions{Keyword: "ECG"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].InnovationID != b.InnovationID {
		t.Errorf("keyword filter: total=%d", total)
	}
}

func TestInnovationDeleteHidesFromCatalogAndQueue(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	innovations := NewInnovationService(db, blobs)
	requests := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	item := seedInnovation(t, db, owner.UserID, "Retired Entry")

	if err := innovations.Delete(ctx, item.InnovationID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := innovations.Delete(ctx, item.InnovationID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}

	if _, err := innovations.Get(ctx, item.InnovationID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if _, err := requests.Submit(ctx, owner.UserID, item.InnovationID, validPayload(), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("submit against deleted innovation err = %v, want ErrNotFound", err)
	}
}
