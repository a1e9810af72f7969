package controllers

import (
	"net/http"
	"strconv"
	"time"

	"orbit-api/config"
	"orbit-api/models"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/innovators?limit=&offset= — public directory of active
// innovators with their catalog counts.
func GetInnovators(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), 20)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	q := config.DB.Model(&models.User{}).
		Where("role_id = ? AND account_status = ? AND delete_at IS NULL", models.RoleInnovator, models.AccountActive)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var users []models.User
	if err := q.Order("full_name ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	data := make([]gin.H, 0, len(users))
	for _, u := range users {
		var count int64
		config.DB.Model(&models.Innovation{}).
			Where("user_id = ? AND delete_at IS NULL", u.UserID).
			Count(&count)

		var photoURL *string
		if u.PhotoKey != nil {
			url := Blobs.PublicURL(*u.PhotoKey)
			photoURL = &url
		}
		data = append(data, gin.H{
			"user":             u,
			"photo_url":        photoURL,
			"innovation_count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"paging":  gin.H{"total": total, "limit": limit, "offset": offset},
	})
}

// GET /api/v1/admin/innovators/pending — registrations awaiting approval.
func GetPendingInnovators(c *gin.Context) {
	var users []models.User
	err := config.DB.Preload("Role").
		Where("account_status = ? AND delete_at IS NULL", models.AccountPending).
		Order("create_at ASC").
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

func setAccountStatus(c *gin.Context, from, to string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.User{}).
		Where("user_id = ? AND account_status = ? AND delete_at IS NULL", id, from).
		Updates(map[string]interface{}{"account_status": to, "update_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update account"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "account is not in the expected state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account " + to})
}

// POST /api/v1/admin/innovators/:id/approve
func ApproveInnovator(c *gin.Context) {
	setAccountStatus(c, models.AccountPending, models.AccountActive)
}

// POST /api/v1/admin/innovators/:id/suspend
func SuspendInnovator(c *gin.Context) {
	setAccountStatus(c, models.AccountActive, models.AccountSuspended)
}
