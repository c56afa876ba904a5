package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"

	"github.com/gin-gonic/gin"
)

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Lines:     repositories.BusLineRepository{},
		BusUsers:  repositories.BusUserRepository{},
		Attendees: repositories.AttendeeRepository{},
		Events:    repositories.EventRepository{},
		RequestID: requestID(c),
	}
}

// GET /api/v1/buses/lines/:id/manifest
func GetBusManifestPDF(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	pdfBytes, filename, err := docsService(c).BusManifest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/v1/events/:id/attendees/sheet
func GetAttendeeSheetPDF(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	pdfBytes, filename, err := docsService(c).AttendeeSheet(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
