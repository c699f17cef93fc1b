// internal/app/router.go
package app

import (
	authHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/auth"
	clientHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/client"
	contentHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/content"
	customerHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/customer"
	jobHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/job"
	quoteHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/quote"
	wsHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/ws"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler     *authHandler.AuthHandler
	QuoteHandler    *quoteHandler.QuoteHandler
	ClientHandler   *clientHandler.ClientHandler
	JobHandler      *jobHandler.JobHandler
	CustomerHandler *customerHandler.CustomerHandler
	ContentHandler  *contentHandler.ContentHandler
	WSHandler       *wsHandler.WSHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket (admin dashboards) ====================
	r.GET("/ws/admin", h.WSHandler.Connect)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/session", h.AuthHandler.Me)
	}

	// ==================== Public Quote Form ====================
	// OptionalAuth links the quote to a signed-in customer without
	// requiring an account.
	api.POST("/quotes", h.AuthMiddleware.OptionalAuth(), h.QuoteHandler.Submit)

	// ==================== Public Content ====================
	content := api.Group("/content")
	{
		content.GET("/blog", h.ContentHandler.BlogPosts)
		content.GET("/blog/:id", h.ContentHandler.BlogPost)
		content.GET("/projects", h.ContentHandler.Projects)
		content.GET("/projects/:slug", h.ContentHandler.Project)
	}

	// ==================== Customer Portal ====================
	client := api.Group("/client")
	client.Use(h.AuthMiddleware.Auth())
	{
		client.GET("/profile", h.ClientHandler.Profile)
		client.PUT("/profile", h.ClientHandler.UpdateProfile)
		client.GET("/quotes", h.ClientHandler.Quotes)
		client.GET("/quotes/:id", h.ClientHandler.Quote)
		client.GET("/jobs", h.ClientHandler.Jobs)
	}

	// ==================== ADMIN ROUTES ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		// Quote pipeline
		adminQuotes := admin.Group("/quotes")
		{
			adminQuotes.GET("", h.QuoteHandler.List)
			adminQuotes.GET("/:id", h.QuoteHandler.Get)
			adminQuotes.PUT("/:id/status", h.QuoteHandler.UpdateStatus)
			adminQuotes.PUT("/:id/proposal", h.QuoteHandler.UpdateProposal)
		}

		// Job tracking
		adminJobs := admin.Group("/jobs")
		{
			adminJobs.POST("", h.JobHandler.Create)
			adminJobs.GET("", h.JobHandler.List)
			adminJobs.GET("/:id", h.JobHandler.Get)
			adminJobs.PUT("/:id", h.JobHandler.Update)
			adminJobs.DELETE("/:id", h.JobHandler.Delete)
		}

		// Customer records
		admin.GET("/customers", h.CustomerHandler.List)

		// Site content
		adminContent := admin.Group("/content")
		{
			adminContent.GET("/blog", h.ContentHandler.AdminBlogPosts)
			adminContent.POST("/blog", h.ContentHandler.CreateBlogPost)
			adminContent.PUT("/blog/:id", h.ContentHandler.UpdateBlogPost)
			adminContent.DELETE("/blog/:id", h.ContentHandler.DeleteBlogPost)

			adminContent.GET("/projects", h.ContentHandler.AdminProjects)
			adminContent.POST("/projects", h.ContentHandler.CreateProject)
			adminContent.PUT("/projects/:id", h.ContentHandler.UpdateProject)
			adminContent.DELETE("/projects/:id", h.ContentHandler.DeleteProject)
		}
	}
}
