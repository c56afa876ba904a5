package api

import (
	"log"
	stdhttp "net/http"

	"github.com/stevenadel/iti-events-server/internal/cloud"
	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	h "github.com/stevenadel/iti-events-server/internal/http/handlers"
	"github.com/stevenadel/iti-events-server/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, uploader *cloud.Uploader) *gin.Engine {
	h.Configure(env, uploader)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{"message": "Route not found"})
	})

	authed := middleware.Authenticate(env)
	admin := middleware.RequireRoles(models.RoleAdmin)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)
		v1.GET("/db-check", h.DBCheck)

		auth := v1.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.GET("/verify", h.VerifyEmail)

		users := v1.Group("/users", authed)
		users.GET("", admin, h.GetUsers)
		users.POST("", admin, h.CreateUser)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", admin, h.DeleteUser)

		events := v1.Group("/events")
		events.GET("", h.GetEvents)
		events.GET("/upcoming", h.GetUpcomingEvents)
		events.GET("/happening", h.GetHappeningEvents)
		events.GET("/finished", h.GetFinishedEvents)
		events.GET("/:id", h.GetEventByID)
		events.POST("", authed, admin, h.CreateEvent)
		events.PUT("/:id", authed, admin, h.UpdateEvent)
		events.DELETE("/:id", authed, admin, h.DeleteEvent)

		events.POST("/:id/attendees", authed, h.RegisterAttendee)
		events.DELETE("/:id/attendees", authed, h.UnregisterAttendee)
		events.GET("/:id/attendees", authed, admin, h.GetEventAttendees)
		events.GET("/:id/attendees/sheet", authed, admin, h.GetAttendeeSheetPDF)

		attendees := v1.Group("/attendees", authed, admin)
		attendees.GET("", h.GetAttendees)
		attendees.PUT("/:id/approval", h.SetAttendeeApproval)

		categories := v1.Group("/event-categories")
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.GET("/:id/events", h.GetCategoryEvents)
		categories.POST("", authed, admin, h.CreateCategory)
		categories.PUT("/:id", authed, admin, h.UpdateCategory)
		categories.DELETE("/:id", authed, admin, h.DeleteCategory)

		drivers := v1.Group("/drivers", authed)
		drivers.GET("", admin, h.GetDrivers)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.POST("", admin, h.CreateDriver)
		drivers.PUT("/:id", admin, h.UpdateDriver)
		drivers.DELETE("/:id", admin, h.DeleteDriver)

		buses := v1.Group("/buses")
		lines := buses.Group("/lines")
		lines.GET("", h.GetBusLines)
		lines.GET("/:id", h.GetBusLineByID)
		lines.POST("", authed, admin, h.CreateBusLine)
		lines.PUT("/:id", authed, admin, h.UpdateBusLine)
		lines.DELETE("/:id", authed, admin, h.DeleteBusLine)
		lines.GET("/:id/manifest", authed, admin, h.GetBusManifestPDF)

		lines.GET("/:id/points", h.GetBusPoints)
		lines.POST("/:id/points", authed, admin, h.CreateBusPoint)
		lines.PUT("/:id/points/:pointId", authed, admin, h.UpdateBusPoint)
		lines.DELETE("/:id/points/:pointId", authed, admin, h.DeleteBusPoint)

		busUsers := buses.Group("/users", authed)
		busUsers.GET("", h.GetMySubscription)
		busUsers.POST("", h.SubscribeToBusLine)
		busUsers.DELETE("", h.UnsubscribeFromBusLine)
	}

	return r
}
