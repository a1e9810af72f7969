package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"orbit-api/services"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/admin/update-requests — FIFO moderation queue.
func GetPendingUpdateRequests(c *gin.Context) {
	svc := services.NewUpdateRequestService(nil, Blobs)
	items, err := svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func resolveRequestID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request id"})
		return 0, false
	}
	return id, true
}

// POST /api/v1/admin/update-requests/:id/approve
func ApproveUpdateRequest(c *gin.Context) {
	id, ok := resolveRequestID(c)
	if !ok {
		return
	}

	svc := services.NewUpdateRequestService(nil, Blobs)
	request, err := svc.Approve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "update request not found"})
		case errors.Is(err, services.ErrStateConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "request was already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to approve request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// POST /api/v1/admin/update-requests/:id/reject
func RejectUpdateRequest(c *gin.Context) {
	id, ok := resolveRequestID(c)
	if !ok {
		return
	}

	svc := services.NewUpdateRequestService(nil, Blobs)
	request, err := svc.Reject(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "update request not found"})
		case errors.Is(err, services.ErrStateConflict):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "request was already resolved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to reject request"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}
