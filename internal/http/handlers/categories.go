package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"

	"github.com/gin-gonic/gin"
)

func categoryService(c *gin.Context) services.CategoryService {
	return services.CategoryService{
		Categories:  repositories.CategoryRepository{},
		Events:      repositories.EventRepository{},
		RequestID:   requestID(c),
		DeleteAsset: deleteAsset(c),
	}
}

// GET /api/v1/event-categories
func GetCategories(c *gin.Context) {
	categories, err := categoryService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /api/v1/event-categories/:id
func GetCategoryByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := categoryService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GET /api/v1/event-categories/:id/events
func GetCategoryEvents(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	events, err := categoryService(c).EventsIn(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// POST /api/v1/event-categories
// Multipart. "name" field plus an optional "image" file.
func CreateCategory(c *gin.Context) {
	name := c.PostForm("name")

	url, publicID, err := uploadFormFile(c, "image")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	category, err := categoryService(c).Create(name, url, publicID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// PUT /api/v1/event-categories/:id
func UpdateCategory(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var name *string
	if v, exists := c.GetPostForm("name"); exists {
		name = &v
	}

	url, publicID, err := uploadFormFile(c, "image")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	category, err := categoryService(c).Update(id, name, url, publicID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /api/v1/event-categories/:id
func DeleteCategory(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := categoryService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
