package controllers

import (
	"net/http"
	"strconv"
	"time"

	"orbit-api/config"
	"orbit-api/models"
	"orbit-api/storage"
	"orbit-api/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/carousel — active banners in display order.
func GetCarousel(c *gin.Context) {
	var items []models.CarouselItem
	err := config.DB.
		Where("delete_at IS NULL AND is_active = ?", true).
		Order("display_order ASC, carousel_id ASC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, gin.H{
			"item":      items[i],
			"image_url": Blobs.PublicURL(items[i].ImageKey),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// POST /api/v1/admin/carousel  (multipart; "image" file required)
func CreateCarouselItem(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "banner image is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read banner image"})
		return
	}
	defer f.Close()

	key := storage.NewKey("carousel", fh.Filename)
	if err := Blobs.Put(c.Request.Context(), key, f, fh.Header.Get("Content-Type")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to store banner image"})
		return
	}

	linkURL := optionalString(c.PostForm("link_url"))
	if linkURL != nil && !utils.ValidateURL(*linkURL) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid link url"})
		return
	}

	item := models.CarouselItem{
		Title:        optionalString(utils.SanitizeInput(c.PostForm("title"))),
		ImageKey:     key,
		LinkURL:      linkURL,
		DisplayOrder: parseIntOrDefault(c.PostForm("display_order"), 0),
		IsActive:     c.PostForm("active") != "false",
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// PUT /api/v1/admin/carousel/:id — metadata only; banners are replaced by
// deleting and re-creating.
func UpdateCarouselItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid banner id"})
		return
	}

	type CarouselRequest struct {
		Title        *string `json:"title"`
		LinkURL      *string `json:"link_url"`
		DisplayOrder *int    `json:"display_order"`
		IsActive     *bool   `json:"is_active"`
	}

	var req CarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var item models.CarouselItem
	if err := config.DB.Where("carousel_id = ? AND delete_at IS NULL", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "banner not found"})
		return
	}

	if req.Title != nil {
		item.Title = optionalString(utils.SanitizeInput(*req.Title))
	}
	if req.LinkURL != nil {
		if !utils.ValidateURL(*req.LinkURL) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid link url"})
			return
		}
		item.LinkURL = optionalString(*req.LinkURL)
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// DELETE /api/v1/admin/carousel/:id
func DeleteCarouselItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid banner id"})
		return
	}

	var item models.CarouselItem
	if err := config.DB.Where("carousel_id = ? AND delete_at IS NULL", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "banner not found"})
		return
	}

	now := time.Now()
	item.DeleteAt = &now
	item.IsActive = false
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete banner"})
		return
	}

	if err := Blobs.Delete(c.Request.Context(), []string{item.ImageKey}); err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Banner deleted"})
}
