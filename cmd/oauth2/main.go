package main

import (
	"context"
	"log"

	"authsdk/cfg"
	"authsdk/pkg/cache"
	"authsdk/pkg/logger"
	"authsdk/pkg/oauth2"

	"github.com/gin-gonic/gin"
)

func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// Oauth2 (in-memory stores, single node)
	// ============
	store := cache.NewMemoryCache()
	defer store.Close()

	oauth2mgr, err := oauth2.NewManager(context.Background(), &config.OAuth2, store, logger.NewZeroLog(config.AppEnv))
	if err != nil {
		log.Fatal(err)
	}

	// ============
	// HTTP
	// ============
	r := gin.Default()
	auth := r.Group("/auth")
	{
		auth.GET("/login/:provider", oauth2.AuthHandler(oauth2mgr))
		auth.GET("/callback/:provider", oauth2.CallbackHandler(oauth2mgr))
	}

	protected := r.Group("/auth")
	protected.Use(oauth2.AuthMiddleware(oauth2mgr))
	{
		protected.GET("/me", oauth2.MeHandler(oauth2mgr))
		protected.GET("/refresh", oauth2.RefreshTokenHandler(oauth2mgr))
		protected.GET("/logout", oauth2.LogoutHandler(oauth2mgr))
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
