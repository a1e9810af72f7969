package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"orbit-api/services"

	"github.com/gin-gonic/gin"
)

func innovationInputFromForm(c *gin.Context) services.InnovationInput {
	var categoryIDs []int
	for _, v := range c.PostFormArray("category_ids") {
		if id, err := strconv.Atoi(v); err == nil {
			categoryIDs = append(categoryIDs, id)
		}
	}

	return services.InnovationInput{
		Title:                c.PostForm("title"),
		Overview:             c.PostForm("overview"),
		Features:             c.PostForm("features"),
		PotentialApplication: c.PostForm("potential_application"),
		UniqueValue:          c.PostForm("unique_value"),
		Origin:               optionalString(c.PostForm("origin")),
		TiktokURL:            optionalString(c.PostForm("tiktok_url")),
		InstagramURL:         optionalString(c.PostForm("instagram_url")),
		YoutubeURL:           optionalString(c.PostForm("youtube_url")),
		FacebookURL:          optionalString(c.PostForm("facebook_url")),
		WebURL:               optionalString(c.PostForm("web_url")),
		CategoryIDs:          categoryIDs,
		RetainImages:         c.PostFormArray("images"),
	}
}

// GET /api/v1/innovations?category_id=&q=&limit=&offset=
func GetInnovations(c *gin.Context) {
	opts := services.ListOptions{
		CategoryID: parseIntOrDefault(c.Query("category_id"), 0),
		Keyword:    c.Query("q"),
		OwnerID:    parseIntOrDefault(c.Query("owner_id"), 0),
		Limit:      parseIntOrDefault(c.Query("limit"), 20),
		Offset:     parseIntOrDefault(c.Query("offset"), 0),
	}

	svc := services.NewInnovationService(nil, Blobs)
	items, total, err := svc.List(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"paging": gin.H{
			"total":  total,
			"limit":  opts.Limit,
			"offset": opts.Offset,
		},
	})
}

// GET /api/v1/innovations/:id
func GetInnovation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid innovation id"})
		return
	}

	svc := services.NewInnovationService(nil, Blobs)
	item, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "innovation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// POST /api/v1/admin/innovations  (multipart)
func CreateInnovation(c *gin.Context) {
	ownerID := parseIntOrDefault(c.PostForm("owner_id"), 0)
	if ownerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "owner_id is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "multipart form required"})
		return
	}

	files, closers, err := filesFromForm(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read uploaded files"})
		return
	}
	defer closeAll(closers)

	svc := services.NewInnovationService(nil, Blobs)
	item, err := svc.Create(c.Request.Context(), ownerID, innovationInputFromForm(c), files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "owner not found"})
		case errors.Is(err, services.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create innovation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// PUT /api/v1/admin/innovations/:id  (multipart) — direct admin edit.
func UpdateInnovation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid innovation id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "multipart form required"})
		return
	}

	files, closers, err := filesFromForm(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read uploaded files"})
		return
	}
	defer closeAll(closers)

	svc := services.NewInnovationService(nil, Blobs)
	item, err := svc.Update(c.Request.Context(), id, innovationInputFromForm(c), files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "innovation not found"})
		case errors.Is(err, services.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update innovation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// DELETE /api/v1/admin/innovations/:id
func DeleteInnovation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid innovation id"})
		return
	}

	svc := services.NewInnovationService(nil, Blobs)
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "innovation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete innovation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Innovation deleted"})
}
