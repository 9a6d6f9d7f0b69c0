package main

import (
	"log"
	"net/http"

	// Embedded zone database; scratch images carry no tzdata.
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/crowncut-ph/crowncut-api/internal/config"
	dbpkg "github.com/crowncut-ph/crowncut-api/internal/db"
	"github.com/crowncut-ph/crowncut-api/internal/middleware"
	"github.com/crowncut-ph/crowncut-api/internal/routes"
	"github.com/crowncut-ph/crowncut-api/internal/timezone"
)

func main() {

	cfg := config.Load()
	if !timezone.IsValid(cfg.Timezone) {
		log.Printf("invalid TIMEZONE %q, falling back to %s", cfg.Timezone, timezone.DefaultTimezone)
	}

	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("CrownCut API running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
