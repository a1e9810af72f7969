package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"orbit-api/models"
	"orbit-api/storage"

	"gorm.io/gorm"
)

func validPayload(images ...string) models.UpdateRequestPayload {
	return models.UpdateRequestPayload{
		Overview:             "A",
		Features:             "B",
		PotentialApplication: "C",
		UniqueValue:          "D",
		Images:               images,
	}
}

func TestSubmitCreatesExactlyOnePendingRow(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Smart Compost", "old/x.png")

	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if request.Status != models.RequestPending {
		t.Errorf("status = %q, want pending", request.Status)
	}
	if request.ResolvedAt != nil {
		t.Errorf("resolved_at set on submission")
	}

	var count int64
	db.Model(&models.InnovationUpdateRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("request rows = %d, want 1", count)
	}

	// The live record and its images are untouched.
	var reloaded models.Innovation
	db.First(&reloaded, innovation.InnovationID)
	if reloaded.Overview != "original overview" {
		t.Errorf("innovation overview changed on submit")
	}
	if got := imageKeys(t, db, innovation.InnovationID); len(got) != 1 || got[0] != "old/x.png" {
		t.Errorf("images changed on submit: %v", got)
	}
}

func TestSubmitUploadsFilesBeforeInsert(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Solar Dryer")

	files := []UploadFile{
		{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("png-a")},
		{Name: "b.png", ContentType: "image/png", Reader: strings.NewReader("png-b")},
	}
	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload("keep/1.png"), files)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(request.Payload.Images) != 3 {
		t.Fatalf("payload images = %v, want retained key + 2 uploads", request.Payload.Images)
	}
	if request.Payload.Images[0] != "keep/1.png" {
		t.Errorf("retained key lost: %v", request.Payload.Images)
	}
	for _, key := range request.Payload.Images[1:] {
		if !blobs.Has(key) {
			t.Errorf("uploaded key %s missing from blob store", key)
		}
	}
}

func TestSubmitRejectsNonOwnerAndMissingInnovation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	other := seedUser(t, db, "Other", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Biogas Kit")

	if _, err := svc.Submit(ctx, other.UserID, innovation.InnovationID, validPayload(), nil); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner submit err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.Submit(ctx, owner.UserID, 9999, validPayload(), nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing innovation err = %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&models.InnovationUpdateRequest{}).Count(&count)
	if count != 0 {
		t.Errorf("request rows = %d, want 0", count)
	}
}

func TestSubmitValidatesNarrativeFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Hydroponics")

	p := validPayload()
	p.Features = "   "
	if _, err := svc.Submit(context.Background(), owner.UserID, innovation.InnovationID, p, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("err = %v, want ErrInvalidPayload", err)
	}
}

func TestSubmitRejectsMalformedLinkURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Drip Irrigation")

	bad := "not a url at all"
	p := validPayload()
	p.WebURL = &bad
	if _, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, p, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("malformed web_url err = %v, want ErrInvalidPayload", err)
	}

	noScheme := "example.com/page"
	p = validPayload()
	p.InstagramURL = &noScheme
	if _, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, p, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("scheme-less instagram_url err = %v, want ErrInvalidPayload", err)
	}

	var count int64
	db.Model(&models.InnovationUpdateRequest{}).Count(&count)
	if count != 0 {
		t.Errorf("request rows = %d, want 0", count)
	}

	ok := "https://example.com/profile"
	p = validPayload()
	p.WebURL = &ok
	if _, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, p, nil); err != nil {
		t.Errorf("well-formed url rejected: %v", err)
	}
}

func TestApprovalIsFieldComplete(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Rice Huller")

	web := "https://example.com"
	p := validPayload()
	p.WebURL = &web
	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, p, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	resolved, err := svc.Approve(ctx, request.RequestID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resolved.Status != models.RequestApproved || resolved.ResolvedAt == nil {
		t.Fatalf("resolved request = %+v, want approved with resolved_at", resolved)
	}

	var got models.Innovation
	db.First(&got, innovation.InnovationID)
	if got.Overview != "A" || got.Features != "B" || got.PotentialApplication != "C" || got.UniqueValue != "D" {
		t.Errorf("narrative fields = %q %q %q %q, want A B C D",
			got.Overview, got.Features, got.PotentialApplication, got.UniqueValue)
	}
	if got.WebURL == nil || *got.WebURL != web {
		t.Errorf("web url not applied: %v", got.WebURL)
	}
}

func TestApprovalReplacesImageSetWholesale(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Cold Press", "k1", "k2")
	blobs.Put(ctx, "k1", strings.NewReader("1"), "image/png")
	blobs.Put(ctx, "k2", strings.NewReader("2"), "image/png")
	blobs.Put(ctx, "k3", strings.NewReader("3"), "image/png")

	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload("k3"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(ctx, request.RequestID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if got := imageKeys(t, db, innovation.InnovationID); len(got) != 1 || got[0] != "k3" {
		t.Fatalf("images = %v, want [k3]", got)
	}
	if blobs.Has("k1") || blobs.Has("k2") {
		t.Errorf("replaced blobs not deleted from store")
	}
	if !blobs.Has("k3") {
		t.Errorf("retained blob k3 deleted")
	}
}

func TestApprovalWithoutImagesLeavesImageSetUntouched(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Weaving Loom", "k1", "k2")
	blobs.Put(ctx, "k1", strings.NewReader("1"), "image/png")
	blobs.Put(ctx, "k2", strings.NewReader("2"), "image/png")

	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(ctx, request.RequestID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if got := imageKeys(t, db, innovation.InnovationID); len(got) != 2 {
		t.Fatalf("images = %v, want [k1 k2] untouched", got)
	}
	if !blobs.Has("k1") || !blobs.Has("k2") {
		t.Errorf("blobs deleted although payload omitted images")
	}
}

func TestResolvedRequestsAreTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Fish Feeder")

	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(ctx, request.RequestID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var afterApprove models.InnovationUpdateRequest
	db.First(&afterApprove, request.RequestID)
	if afterApprove.Status != models.RequestApproved || afterApprove.ResolvedAt == nil {
		t.Fatalf("stored request = %+v, want approved with resolved_at", afterApprove)
	}

	if _, err := svc.Approve(ctx, request.RequestID); !errors.Is(err, ErrStateConflict) {
		t.Errorf("second approve err = %v, want ErrStateConflict", err)
	}
	if _, err := svc.Reject(ctx, request.RequestID); !errors.Is(err, ErrStateConflict) {
		t.Errorf("reject after approve err = %v, want ErrStateConflict", err)
	}

	var reloaded models.InnovationUpdateRequest
	db.First(&reloaded, request.RequestID)
	if reloaded.Status != afterApprove.Status {
		t.Errorf("status = %q, want %q", reloaded.Status, afterApprove.Status)
	}
	if reloaded.ResolvedAt == nil || !reloaded.ResolvedAt.Equal(*afterApprove.ResolvedAt) {
		t.Errorf("resolved_at changed by repeat resolution")
	}

	if _, err := svc.Approve(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("approve missing id err = %v, want ErrNotFound", err)
	}
}

func TestRejectionTouchesOnlyTheRequest(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Charcoal Kiln", "k1")
	blobs.Put(ctx, "k1", strings.NewReader("1"), "image/png")

	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload("k9"), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rejected, err := svc.Reject(ctx, request.RequestID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.RequestRejected || rejected.ResolvedAt == nil {
		t.Fatalf("rejected request = %+v", rejected)
	}

	var got models.Innovation
	db.First(&got, innovation.InnovationID)
	if got.Overview != "original overview" {
		t.Errorf("rejection modified innovation fields")
	}
	if keys := imageKeys(t, db, innovation.InnovationID); len(keys) != 1 || keys[0] != "k1" {
		t.Errorf("rejection modified image set: %v", keys)
	}
	if !blobs.Has("k1") {
		t.Errorf("rejection deleted blobs")
	}
}

func TestPendingQueueIsFIFOWithDisplayContext(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Ayu Lestari", models.RoleInnovator)
	first := seedInnovation(t, db, owner.UserID, "First Entry")
	second := seedInnovation(t, db, owner.UserID, "Second Entry")

	r1, err := svc.Submit(ctx, owner.UserID, first.InnovationID, validPayload("img/a.png"), nil)
	if err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	r2, err := svc.Submit(ctx, owner.UserID, second.InnovationID, validPayload(), nil)
	if err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	queue, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}
	if queue[0].RequestID != r1.RequestID || queue[1].RequestID != r2.RequestID {
		t.Errorf("queue order = [%d %d], want oldest first [%d %d]",
			queue[0].RequestID, queue[1].RequestID, r1.RequestID, r2.RequestID)
	}
	if queue[0].InnovationTitle != "First Entry" || queue[0].SubmitterName != "Ayu Lestari" {
		t.Errorf("display context = %q / %q", queue[0].InnovationTitle, queue[0].SubmitterName)
	}
	if len(queue[0].ImageURLs) != 1 || queue[0].ImageURLs[0] != blobs.PublicURL("img/a.png") {
		t.Errorf("image urls = %v", queue[0].ImageURLs)
	}

	// Resolving removes the entry from the queue.
	if _, err := svc.Reject(ctx, r1.RequestID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	queue, err = svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(queue) != 1 || queue[0].RequestID != r2.RequestID {
		t.Errorf("queue after reject = %+v", queue)
	}
}

func TestPendingQueueOmitsDeletedInnovations(t *testing.T) {
	db := newTestDB(t)
	svc := NewUpdateRequestService(db, storage.NewMemory())
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	kept := seedInnovation(t, db, owner.UserID, "Kept Entry")
	doomed := seedInnovation(t, db, owner.UserID, "Doomed Entry")

	keptReq, err := svc.Submit(ctx, owner.UserID, kept.InnovationID, validPayload(), nil)
	if err != nil {
		t.Fatalf("submit kept: %v", err)
	}
	if _, err := svc.Submit(ctx, owner.UserID, doomed.InnovationID, validPayload(), nil); err != nil {
		t.Fatalf("submit doomed: %v", err)
	}

	err = db.Model(&models.Innovation{}).
		Where("innovation_id = ?", doomed.InnovationID).
		Update("delete_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	queue, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(queue) != 1 || queue[0].RequestID != keptReq.RequestID {
		t.Errorf("queue = %+v, want only the request for the surviving innovation", queue)
	}
}

func TestSubmitRemovesUploadsWhenInsertFails(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Palm Sugar Press")

	// Dropping the request table makes the insert fail after the uploads
	// have already landed in the blob store.
	if err := db.Migrator().DropTable(&models.InnovationUpdateRequest{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	files := []UploadFile{
		{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("png-a")},
		{Name: "b.png", ContentType: "image/png", Reader: strings.NewReader("png-b")},
	}
	if _, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload(), files); err == nil {
		t.Fatalf("submit succeeded without a request table")
	}
	if blobs.Len() != 0 {
		t.Errorf("blob store holds %d objects after failed submit, want 0", blobs.Len())
	}
}

// End-to-end pass over the whole workflow: submit with a fresh upload while
// the innovation holds an old image, approve, and verify table and blob store
// both converged on the new set.
func TestEndToEndSubmitApproveReplacesOldImage(t *testing.T) {
	db := newTestDB(t)
	blobs := storage.NewMemory()
	svc := NewUpdateRequestService(db, blobs)
	ctx := context.Background()

	owner := seedUser(t, db, "Owner", models.RoleInnovator)
	innovation := seedInnovation(t, db, owner.UserID, "Banana Chips Line", "old/x.png")
	blobs.Put(ctx, "old/x.png", strings.NewReader("old"), "image/png")

	files := []UploadFile{{Name: "a.png", ContentType: "image/png", Reader: strings.NewReader("new")}}
	request, err := svc.Submit(ctx, owner.UserID, innovation.InnovationID, validPayload(), files)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	queue, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(queue) != 1 || queue[0].InnovationID != innovation.InnovationID {
		t.Fatalf("queue = %+v, want one entry for the innovation", queue)
	}

	resolved, err := svc.Approve(ctx, queue[0].RequestID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resolved.Status != models.RequestApproved || resolved.ResolvedAt == nil {
		t.Fatalf("resolved = %+v", resolved)
	}

	keys := imageKeys(t, db, innovation.InnovationID)
	if len(keys) != 1 || keys[0] != request.Payload.Images[0] {
		t.Fatalf("images = %v, want exactly the uploaded key", keys)
	}
	if blobs.Has("old/x.png") {
		t.Errorf("old blob still present after approval")
	}
	if !blobs.Has(keys[0]) {
		t.Errorf("new blob missing after approval")
	}
}
