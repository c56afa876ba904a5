package handlers

import (
	"net/http"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"

	"github.com/gin-gonic/gin"
)

type busLineRequest struct {
	Name          string            `json:"name"`
	Capacity      int               `json:"capacity"`
	DepartureTime time.Time         `json:"departureTime"`
	ArrivalTime   time.Time         `json:"arrivalTime"`
	DriverID      *int64            `json:"driverId"`
	IsActive      *bool             `json:"isActive"`
	BusPoints     []busPointRequest `json:"busPoints"`
}

type busPointRequest struct {
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	PickupTime time.Time `json:"pickupTime"`
}

func (r busPointRequest) toModel() models.BusPoint {
	return models.BusPoint{
		Name:       r.Name,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		PickupTime: r.PickupTime,
	}
}

// GET /api/v1/buses/lines
func GetBusLines(c *gin.Context) {
	lines, err := repositories.BusLineRepository{}.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// GET /api/v1/buses/lines/:id
func GetBusLineByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	line, err := repositories.BusLineRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// POST /api/v1/buses/lines
func CreateBusLine(c *gin.Context) {
	var req busLineRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	line, err := models.NewBusLine(req.Name, req.Capacity, req.DepartureTime, req.ArrivalTime, req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	for _, p := range req.BusPoints {
		point := p.toModel()
		if err := point.Validate(); err != nil {
			RespondDomainError(c, err)
			return
		}
		line.BusPoints = append(line.BusPoints, point)
	}

	created, err := repositories.BusLineRepository{}.Create(line)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v1/buses/lines/:id
// Descriptive fields only. Seat counts are owned by subscriptions.
func UpdateBusLine(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req busLineRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.BusLineRepository{}
	line, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	validated, err := models.NewBusLine(req.Name, line.Capacity, req.DepartureTime, req.ArrivalTime, req.DriverID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	line.Name = validated.Name
	line.DepartureTime = validated.DepartureTime
	line.ArrivalTime = validated.ArrivalTime
	line.DriverID = validated.DriverID
	if req.IsActive != nil {
		line.IsActive = *req.IsActive
	}

	updated, err := repo.Update(line)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v1/buses/lines/:id
func DeleteBusLine(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := (repositories.BusLineRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/buses/lines/:id/points
func GetBusPoints(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	repo := repositories.BusLineRepository{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	points, err := repo.ListPoints(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// POST /api/v1/buses/lines/:id/points
func CreateBusPoint(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req busPointRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	point := req.toModel()
	if err := point.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.BusLineRepository{}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := repo.AddPoint(id, point)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/v1/buses/lines/:id/points/:pointId
func UpdateBusPoint(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	pointID, ok := ParseIDParam(c, "pointId")
	if !ok {
		return
	}

	var req busPointRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	point := req.toModel()
	if err := point.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	updated, err := repositories.BusLineRepository{}.UpdatePoint(id, pointID, point)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/v1/buses/lines/:id/points/:pointId
func DeleteBusPoint(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	pointID, ok := ParseIDParam(c, "pointId")
	if !ok {
		return
	}
	if err := (repositories.BusLineRepository{}).DeletePoint(id, pointID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
