package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	SignUp(c *ginext.Context)
	Login(c *ginext.Context)
	Logout(c *ginext.Context)
	CreateEvent(c *ginext.Context)
	GetEvent(c *ginext.Context)
	ListEvents(c *ginext.Context)
	RegisterForEvent(c *ginext.Context)
	ListRegistrations(c *ginext.Context)
}

func InitRouter(mode string, h Handler, auth, creatorOnly, joinerOnly ginext.HandlerFunc, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	api := router.Group("/api")
	{
		// Auth
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", auth, h.Logout)

		// Events
		api.GET("/events", auth, h.ListEvents)
		api.GET("/events/:id", auth, h.GetEvent)
		api.POST("/events", auth, creatorOnly, h.CreateEvent)

		// Registrations
		api.POST("/events/:id/register", auth, joinerOnly, h.RegisterForEvent)
		api.GET("/events/:id/registrations", auth, creatorOnly, h.ListRegistrations)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	return router
}
