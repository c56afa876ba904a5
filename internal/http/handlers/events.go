package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/gin-gonic/gin"
)

func eventService(c *gin.Context) services.EventService {
	return services.EventService{
		Events:     repositories.EventRepository{},
		Categories: repositories.CategoryRepository{},
		RequestID:  requestID(c),
	}
}

// GET /api/v1/events
func GetEvents(c *gin.Context) {
	events, err := eventService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/v1/events/upcoming
func GetUpcomingEvents(c *gin.Context) {
	events, err := eventService(c).Upcoming(utils.NowUTC())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/v1/events/happening
func GetHappeningEvents(c *gin.Context) {
	events, err := eventService(c).Happening(utils.NowUTC())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/v1/events/finished
func GetFinishedEvents(c *gin.Context) {
	events, err := eventService(c).Finished(utils.NowUTC())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GET /api/v1/events/:id
func GetEventByID(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	event, err := eventService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /api/v1/events
func CreateEvent(c *gin.Context) {
	var in models.EventInput
	if !BindJSONOrError(c, &in) {
		return
	}

	event, err := eventService(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /api/v1/events/:id
func UpdateEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var in models.EventInput
	if !BindJSONOrError(c, &in) {
		return
	}

	event, err := eventService(c).Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /api/v1/events/:id
func DeleteEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := eventService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
