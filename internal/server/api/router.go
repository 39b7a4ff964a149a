// Package api is the HTTP surface: gin routes, middleware and the JSON shapes
// exchanged with the frontend.
package api

import (
	"net/http"

	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/QuantumCastro/Vitrum/internal/server/config"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts the REST routes under cfg.APIPrefix and a root /health.
func NewRouter(cfg *config.Config, h *Handler, authn Authenticator, logger logging.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Recovery(logger), CORS(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthStatus{Status: "ok", App: cfg.AppName, Environment: cfg.Environment})
	})

	api := r.Group(cfg.APIPrefix)
	{
		if cfg.APIPrefix != "" {
			api.GET("/health", func(c *gin.Context) {
				c.JSON(http.StatusOK, HealthStatus{Status: "ok"})
			})
		}

		requireUser := Auth(authn, logger)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/me", requireUser, h.Me)
		}

		vaults := api.Group("/vaults", requireUser)
		{
			vaults.GET("", h.ListVaults)
			vaults.POST("", h.CreateVault)
			vaults.GET("/:vault_id", h.GetVault)
			vaults.PATCH("/:vault_id", h.UpdateVault)

			vaults.GET("/:vault_id/notes", h.ListNotes)
			vaults.POST("/:vault_id/notes", h.CreateNote)
			vaults.PATCH("/:vault_id/notes/:note_id", h.UpdateNote)
			vaults.DELETE("/:vault_id/notes/:note_id", h.DeleteNote)
		}
	}

	return r
}
