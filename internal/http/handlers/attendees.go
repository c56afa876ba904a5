package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/http/middleware"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"

	"github.com/gin-gonic/gin"
)

type approvalRequest struct {
	IsApproved *bool `json:"isApproved"`
}

func attendeeService(c *gin.Context) services.AttendeeService {
	return services.AttendeeService{
		Attendees:   repositories.AttendeeRepository{},
		Events:      repositories.EventRepository{},
		RequestID:   requestID(c),
		DeleteAsset: deleteAsset(c),
	}
}

// POST /api/v1/events/:id/attendees
// Multipart. An optional "receipt" file is stored as the payment proof.
func RegisterAttendee(c *gin.Context) {
	eventID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	url, publicID, err := uploadFormFile(c, "receipt")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	receipt := models.Receipt{ImageURL: url, CloudinaryPublicID: publicID}

	attendee, err := attendeeService(c).Register(user, eventID, receipt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attendee)
}

// DELETE /api/v1/events/:id/attendees
func UnregisterAttendee(c *gin.Context) {
	eventID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	if _, err := attendeeService(c).Unregister(user.ID, eventID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/events/:id/attendees
func GetEventAttendees(c *gin.Context) {
	eventID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	attendees, err := attendeeService(c).ListByEvent(eventID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendees)
}

// GET /api/v1/attendees
func GetAttendees(c *gin.Context) {
	attendees, err := attendeeService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendees)
}

// PUT /api/v1/attendees/:id/approval
func SetAttendeeApproval(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req approvalRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.IsApproved == nil {
		RespondError(c, http.StatusBadRequest, "isApproved is required")
		return
	}

	attendee, err := attendeeService(c).SetApproval(id, *req.IsApproved)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendee)
}
