package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"orbit-api/models"
	"orbit-api/services"

	"github.com/gin-gonic/gin"
)

// POST /api/v1/contact
func SubmitContactMessage(c *gin.Context) {
	type ContactRequest struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Body    string `json:"body" binding:"required"`
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	svc := services.NewContactService(nil)
	msg, err := svc.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateMessage):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "We already have a message from this email; please wait for a reply"})
		case errors.Is(err, services.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to submit message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": msg})
}

// GET /api/v1/admin/contact-messages?status=new
func GetContactMessages(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != models.ContactNew && status != models.ContactHandled {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid status filter"})
		return
	}

	limit := parseIntOrDefault(c.Query("limit"), 50)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	svc := services.NewContactService(nil)
	items, total, err := svc.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"paging":  gin.H{"total": total, "limit": limit, "offset": offset},
	})
}

// POST /api/v1/admin/contact-messages/:id/handle
func HandleContactMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid message id"})
		return
	}

	svc := services.NewContactService(nil)
	if err := svc.MarkHandled(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "message not found or already handled"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message marked handled"})
}
