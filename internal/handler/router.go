package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ourhour/weddinghub/internal/config"
	"ourhour/weddinghub/internal/handler/middleware"
	"ourhour/weddinghub/internal/metrics"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Template   *TemplateHandler
	Invitation *InvitationHandler
	RSVP       *RSVPHandler
	Guestbook  *GuestbookHandler
	Payment    *PaymentHandler
	Admin      *AdminHandler
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	h Handlers,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidators()

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.JWTAuth(jwtManager)

	// Anonymous guest submissions are throttled per client IP.
	guestLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
		guestLimit = limiter.Handler()
	}

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", requireAuth, h.Auth.Me)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
	}

	templates := api.Group("/templates")
	{
		templates.GET("/", h.Template.List)
		templates.GET("/:id/", h.Template.Get)
	}

	invitations := api.Group("/invitations")
	{
		// Public, addressed by slug
		invitations.GET("/slug/:slug/", h.Invitation.GetBySlug)
		invitations.GET("/slug/:slug/rsvps/", h.RSVP.StatisticsBySlug)
		invitations.GET("/slug/:slug/guestbooks/", h.Guestbook.ListBySlug)

		// Guest-facing, addressed by id
		invitations.POST("/:id/rsvps/", guestLimit, h.RSVP.Submit)
		invitations.POST("/:id/guestbooks/", guestLimit, h.Guestbook.Create)
		invitations.GET("/:id/guestbooks/", h.Guestbook.List)

		// Owner
		invitations.GET("/", requireAuth, h.Invitation.List)
		invitations.POST("/", requireAuth, h.Invitation.Create)
		invitations.GET("/:id/", requireAuth, h.Invitation.Get)
		invitations.PATCH("/:id/", requireAuth, h.Invitation.Update)
		invitations.DELETE("/:id/", requireAuth, h.Invitation.Delete)
		invitations.PATCH("/:id/publish/", requireAuth, h.Invitation.Publish)
		invitations.GET("/:id/rsvps/", requireAuth, h.RSVP.List)
		invitations.DELETE("/:id/guestbooks/:gid/", requireAuth, h.Guestbook.Delete)
	}

	payments := api.Group("/payments")
	payments.Use(requireAuth)
	{
		payments.GET("/", h.Payment.List)
		payments.POST("/", h.Payment.Create)
	}

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.AdminAuth())
	{
		admin.POST("/templates/", h.Admin.CreateTemplate)
		admin.PATCH("/templates/:id/", h.Admin.UpdateTemplate)
		admin.PATCH("/payments/:order_id/", h.Admin.UpdatePaymentStatus)
	}

	return r
}
