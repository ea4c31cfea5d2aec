package router

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/server/http/handlers"
	"github.com/familybank/allowance/internal/server/http/middleware"
)

// Facade joins the handler operations with the session resolution the auth
// middleware needs.
type Facade interface {
	handlers.AllowanceFacade
	middleware.SessionFacade
}

// Setup configures gin router with handlers and middleware.
func Setup(facade Facade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	ledgerHandler := handlers.NewLedgerHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/me", authHandler.Me)
	authed.GET("/dashboard", ledgerHandler.Dashboard)
	authed.GET("/transactions", ledgerHandler.Transactions)
	authed.POST("/withdrawals", withdrawalHandler.Create)
	authed.GET("/withdrawals", withdrawalHandler.List)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.POST("/users/:id/adjust", adminHandler.AdjustBalance)
	admin.GET("/requests", adminHandler.ListRequests)
	admin.PUT("/requests/:id", adminHandler.ResolveRequest)

	engine.NoRoute(spaFallback(cfg.StaticDir))

	return engine
}

// spaFallback serves the built frontend: real files directly, everything else
// gets index.html so client-side routing works after a refresh.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Status(http.StatusNotFound)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	}
}
