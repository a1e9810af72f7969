package controllers

import (
	"net/http"
	"strconv"
	"time"

	"orbit-api/config"
	"orbit-api/models"
	"orbit-api/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/categories
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Where("delete_at IS NULL").Order("category_name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// POST /api/v1/admin/categories
func CreateCategory(c *gin.Context) {
	type CategoryRequest struct {
		CategoryName string `json:"category_name" binding:"required"`
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	name := utils.SanitizeInput(req.CategoryName)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "category name is required"})
		return
	}

	var existing models.Category
	if err := config.DB.Where("category_name = ? AND delete_at IS NULL", name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "category already exists"})
		return
	}

	category := models.Category{CategoryName: name}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// PUT /api/v1/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
		return
	}

	type CategoryRequest struct {
		CategoryName string `json:"category_name" binding:"required"`
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var category models.Category
	if err := config.DB.Where("category_id = ? AND delete_at IS NULL", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "category not found"})
		return
	}

	now := time.Now()
	category.CategoryName = utils.SanitizeInput(req.CategoryName)
	category.UpdateAt = &now
	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DELETE /api/v1/admin/categories/:id
func DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid category id"})
		return
	}

	res := config.DB.Model(&models.Category{}).
		Where("category_id = ? AND delete_at IS NULL", id).
		Update("delete_at", time.Now())
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete category"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
