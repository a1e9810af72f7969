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

func newsCoverURL(n *models.News) *string {
	if n.CoverKey == nil {
		return nil
	}
	u := Blobs.PublicURL(*n.CoverKey)
	return &u
}

// GET /api/v1/news?limit=&offset=
func GetNewsList(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), 10)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	q := config.DB.Model(&models.News{}).
		Where("delete_at IS NULL AND published_at IS NOT NULL")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var items []models.News
	if err := q.Order("published_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, gin.H{
			"news":      items[i],
			"cover_url": newsCoverURL(&items[i]),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"paging":  gin.H{"total": total, "limit": limit, "offset": offset},
	})
}

// GET /api/v1/news/:slug
func GetNewsBySlug(c *gin.Context) {
	var item models.News
	err := config.DB.Preload("Author").
		Where("slug = ? AND delete_at IS NULL AND published_at IS NOT NULL", c.Param("slug")).
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item, "cover_url": newsCoverURL(&item)})
}

// POST /api/v1/admin/news  (multipart; optional "cover" file)
func CreateNews(c *gin.Context) {
	authorID, _ := getUserIDFromContext(c)

	title := utils.SanitizeInput(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title is required"})
		return
	}

	item := models.News{
		Title:    title,
		Slug:     utils.Slugify(title),
		Body:     c.PostForm("body"),
		AuthorID: authorID,
	}
	if c.PostForm("publish") == "true" {
		now := time.Now()
		item.PublishedAt = &now
	}

	if fh, err := c.FormFile("cover"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read cover image"})
			return
		}
		defer f.Close()
		key := storage.NewKey("news", fh.Filename)
		if err := Blobs.Put(c.Request.Context(), key, f, fh.Header.Get("Content-Type")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to store cover image"})
			return
		}
		item.CoverKey = &key
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// PUT /api/v1/admin/news/:id  (multipart; optional "cover" file)
func UpdateNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid news id"})
		return
	}

	var item models.News
	if err := config.DB.Where("news_id = ? AND delete_at IS NULL", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "article not found"})
		return
	}

	if title := utils.SanitizeInput(c.PostForm("title")); title != "" {
		item.Title = title
		item.Slug = utils.Slugify(title)
	}
	if body := c.PostForm("body"); body != "" {
		item.Body = body
	}
	switch c.PostForm("publish") {
	case "true":
		if item.PublishedAt == nil {
			now := time.Now()
			item.PublishedAt = &now
		}
	case "false":
		item.PublishedAt = nil
	}

	if fh, err := c.FormFile("cover"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read cover image"})
			return
		}
		defer f.Close()
		key := storage.NewKey("news", fh.Filename)
		if err := Blobs.Put(c.Request.Context(), key, f, fh.Header.Get("Content-Type")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to store cover image"})
			return
		}
		old := item.CoverKey
		item.CoverKey = &key
		if old != nil {
			if err := Blobs.Delete(c.Request.Context(), []string{*old}); err != nil {
				// Orphan blob only; the row is consistent.
				c.Error(err)
			}
		}
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// DELETE /api/v1/admin/news/:id
func DeleteNews(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid news id"})
		return
	}

	res := config.DB.Model(&models.News{}).
		Where("news_id = ? AND delete_at IS NULL", id).
		Update("delete_at", time.Now())
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete article"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "article not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Article deleted"})
}
