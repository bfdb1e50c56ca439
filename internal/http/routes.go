package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, cfg config.Config, env *Env, verifier *auth.Verifier, hub *ws.Hub) {

	// --- Global middleware ---

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- Rate limiter for write endpoints ---

	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	limiter.StartJanitor(10 * time.Minute)

	authed := AuthMiddleware(verifier)

	// --- API routes ---

	api := router.Group("/api")
	{
		api.GET("/boards", env.ListBoards)
		api.POST("/boards", authed, RequireAdmin(), env.CreateBoard)

		api.GET("/boards/:id/feedback", optionalAuth(verifier), env.ListFeedback)
		api.POST("/boards/:id/feedback", authed, RateLimitMiddleware(limiter), env.CreateFeedback)

		api.GET("/feedback/:id/comments", env.ListComments)
		api.POST("/feedback/:id/comments", authed, RateLimitMiddleware(limiter), env.CreateComment)
		api.POST("/feedback/:id/vote", authed, env.VoteFeedback)
		api.PATCH("/feedback/:id/status", authed, RequireModerator(), env.UpdateStatus)
		api.DELETE("/feedback/:id", authed, RequireModerator(), env.DeleteFeedback)

		api.GET("/searches/recent", authed, env.RecentSearches)
		api.DELETE("/searches/recent", authed, env.ClearRecentSearches)
	}

	// --- WebSocket route ---

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c.Writer, c.Request)
	})
}

// optionalAuth attaches a session when a valid token is present but lets
// anonymous reads through. Used on the board listing so searches can be
// recorded for signed-in users without walling off the board.
func optionalAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := verifier.Parse(c.GetHeader("Authorization")); err == nil {
			c.Set(sessionKey, sess)
		}
		c.Next()
	}
}
