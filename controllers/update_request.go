package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"orbit-api/models"
	"orbit-api/services"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/innovations/:id/update-requests  (multipart)
//
// Form fields: the four narrative fields, optional origin/link fields,
// repeated "images" values naming existing storage keys to retain, and
// repeated "files" parts carrying new images.
func SubmitUpdateRequest(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found in context"})
		return
	}

	innovationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || innovationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid innovation id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "multipart form required"})
		return
	}

	payload := models.UpdateRequestPayload{
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
		Images:               form.Value["images"],
	}

	files, closers, err := filesFromForm(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "failed to read uploaded files"})
		return
	}
	defer closeAll(closers)

	svc := services.NewUpdateRequestService(nil, Blobs)
	request, err := svc.Submit(c.Request.Context(), userID, innovationID, payload, files)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "innovation not found"})
		case errors.Is(err, services.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "only the owner can propose changes"})
		case errors.Is(err, services.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to submit update request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// GET /api/v1/update-requests?limit=50&offset=0 — the caller's own requests.
func GetMyUpdateRequests(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found in context"})
		return
	}

	limit := parseIntOrDefault(c.Query("limit"), 50)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	svc := services.NewUpdateRequestService(nil, Blobs)
	items, total, err := svc.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"paging": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
