package handlers

import (
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/http/middleware"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"

	"github.com/gin-gonic/gin"
)

type subscriptionRequest struct {
	BusLineID int64 `json:"busLineId"`
}

func busService(c *gin.Context) services.BusService {
	return services.BusService{
		Lines:     repositories.BusLineRepository{},
		BusUsers:  repositories.BusUserRepository{},
		RequestID: requestID(c),
	}
}

// POST /api/v1/buses/users
func SubscribeToBusLine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	var req subscriptionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BusLineID <= 0 {
		RespondError(c, http.StatusBadRequest, "busLineId is required")
		return
	}

	subscription, err := busService(c).Subscribe(user.ID, req.BusLineID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subscription)
}

// DELETE /api/v1/buses/users
func UnsubscribeFromBusLine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	var req subscriptionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.BusLineID <= 0 {
		RespondError(c, http.StatusBadRequest, "busLineId is required")
		return
	}

	if err := busService(c).Unsubscribe(user.ID, req.BusLineID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/buses/users
func GetMySubscription(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Authorization token is required")
		return
	}

	subscription, err := repositories.BusUserRepository{}.GetByUser(user.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, subscription)
}
