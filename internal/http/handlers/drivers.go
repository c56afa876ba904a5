package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"

	"github.com/gin-gonic/gin"
)

type driverRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// GET /api/v1/drivers
func GetDrivers(c *gin.Context) {
	drivers, err := repositories.DriverRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GET /api/v1/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	driver, err := repositories.DriverRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// POST /api/v1/drivers
func CreateDriver(c *gin.Context) {
	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	driver, err := models.NewDriver(req.Name, req.PhoneNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repositories.DriverRepository{}.Create(driver)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v1/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req driverRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	driver, err := models.NewDriver(req.Name, req.PhoneNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	driver.ID = id

	updated, err := repositories.DriverRepository{}.Update(driver)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v1/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := (repositories.DriverRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
