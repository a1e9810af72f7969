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

// GET /api/v1/events?upcoming=true&limit=&offset=
func GetEvents(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), 20)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	q := config.DB.Model(&models.Event{}).Where("delete_at IS NULL")
	if c.Query("upcoming") == "true" {
		q = q.Where("starts_at >= ?", time.Now())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var items []models.Event
	if err := q.Order("starts_at ASC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		var posterURL *string
		if items[i].PosterKey != nil {
			u := Blobs.PublicURL(*items[i].PosterKey)
			posterURL = &u
		}
		data = append(data, gin.H{"event": items[i], "poster_url": posterURL})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"paging":  gin.H{"total": total, "limit": limit, "offset": offset},
	})
}

func bindEventForm(c *gin.Context, item *models.Event) (bool, string) {
	if title := utils.SanitizeInput(c.PostForm("title")); title != "" {
		item.Title = title
	}
	if item.Title == "" {
		return false, "title is required"
	}
	if summary := c.PostForm("summary"); summary != "" {
		item.Summary = summary
	}
	item.Location = optionalString(c.PostForm("location"))
	item.LinkURL = optionalString(c.PostForm("link_url"))
	if item.LinkURL != nil && !utils.ValidateURL(*item.LinkURL) {
		return false, "invalid link url"
	}

	if v := c.PostForm("starts_at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return false, "starts_at must be RFC3339"
		}
		item.StartsAt = t
	}
	if item.StartsAt.IsZero() {
		return false, "starts_at is required"
	}
	if v := c.PostForm("ends_at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return false, "ends_at must be RFC3339"
		}
		item.EndsAt = &t
	}

	if fh, err := c.FormFile("poster"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return false, "failed to read poster image"
		}
		defer f.Close()
		key := storage.NewKey("events", fh.Filename)
		if err := Blobs.Put(c.Request.Context(), key, f, fh.Header.Get("Content-Type")); err != nil {
			return false, "failed to store poster image"
		}
		item.PosterKey = &key
	}
	return true, ""
}

// POST /api/v1/admin/events  (multipart)
func CreateEvent(c *gin.Context) {
	var item models.Event
	if ok, msg := bindEventForm(c, &item); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// PUT /api/v1/admin/events/:id  (multipart)
func UpdateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid event id"})
		return
	}

	var item models.Event
	if err := config.DB.Where("event_id = ? AND delete_at IS NULL", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		return
	}

	if ok, msg := bindEventForm(c, &item); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// DELETE /api/v1/admin/events/:id
func DeleteEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid event id"})
		return
	}

	res := config.DB.Model(&models.Event{}).
		Where("event_id = ? AND delete_at IS NULL", id).
		Update("delete_at", time.Now())
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete event"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted"})
}
