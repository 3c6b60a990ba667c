package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RelojeriaCentral/taller-api/internal/config"
	dbpkg "github.com/RelojeriaCentral/taller-api/internal/db"
	"github.com/RelojeriaCentral/taller-api/internal/logger"
	"github.com/RelojeriaCentral/taller-api/internal/routes"
)

func main() {

	if _, err := logger.New(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zap.L().Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	zap.S().Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		zap.S().Fatalf("failed to start server: %v", err)
	}
}
