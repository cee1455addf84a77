// @title           Estimator API
// @version         1.0
// @description     Quote lifecycle backend - plan takeoff aggregation, versioned quotes and amendments.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	_ "estimator/docs"
	"estimator/handlers"
	"estimator/repository"
	"estimator/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

func HelloWorld(c *gin.Context) {
	c.JSON(200, gin.H{"message": "Hello, World!"})
}

// archiveDays reads the stale draft threshold, in days.
func archiveDays() int {
	if raw := os.Getenv("DRAFT_ARCHIVE_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
		log.Printf("Invalid DRAFT_ARCHIVE_DAYS %q, using default", raw)
	}
	return 90
}

func main() {
	db := storage.InitDB()
	defer db.Close()

	gormDB := storage.InitGormDB()

	if err := repository.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	// Nightly maintenance: archive drafts nobody touched in months. The
	// atomic flag keeps a slow run from overlapping the next trigger.
	c := cron.New()
	var archiveJobRunning int32
	_, err := c.AddFunc("30 2 * * *", func() {
		if !atomic.CompareAndSwapInt32(&archiveJobRunning, 0, 1) {
			log.Println("Archive job already running, skipping this trigger")
			return
		}
		defer atomic.StoreInt32(&archiveJobRunning, 0)

		archived, err := repository.ArchiveStaleDrafts(db, archiveDays())
		if err != nil {
			log.Printf("Archive job failed: %v", err)
			return
		}
		log.Printf("Archive job archived %d stale draft quotes", archived)
	})
	if err != nil {
		log.Printf("Failed to schedule archive job: %v", err)
	}
	c.Start()
	defer c.Stop()

	router := gin.Default()
	router.Use(cors.New(CORSConfig()))

	router.GET("/", HelloWorld)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Catalog
	router.POST("/api/catalog_items", handlers.CreateCatalogItem(gormDB))
	router.GET("/api/catalog_items", handlers.ListCatalogItems(gormDB))
	router.GET("/api/catalog_items/:id", handlers.GetCatalogItem(gormDB))
	router.PUT("/api/catalog_items/:id", handlers.UpdateCatalogItem(gormDB))
	router.DELETE("/api/catalog_items/:id", handlers.DeleteCatalogItem(gormDB))

	// Takeoff
	router.POST("/api/takeoff_summary", handlers.TakeoffSummary(gormDB))
	router.POST("/api/takeoff_to_quote", handlers.TakeoffToQuote(db))

	// Quotes
	router.GET("/api/quotes", handlers.ListQuotes(db))
	router.GET("/api/quotes/:id", handlers.GetQuote(db))
	router.PUT("/api/quotes/:id/contents", handlers.UpdateQuoteContents(db))
	router.POST("/api/quotes/:id/line_items", handlers.AddManualLineItem(db))

	// Quote lifecycle
	router.POST("/api/quotes/:id/lock", handlers.LockQuote(db))
	router.POST("/api/quotes/:id/amendments", handlers.StartAmendment(db))
	router.POST("/api/quotes/:id/amendments/finalize", handlers.FinalizeAmendment(db))
	router.POST("/api/quotes/:id/amendments/discard", handlers.DiscardAmendment(db))
	router.GET("/api/quotes/:id/versions", handlers.ListQuoteVersions(db))
	router.GET("/api/quotes/:id/versions/:version_id/changes", handlers.ListVersionChanges(db))
	router.GET("/api/quotes/:id/pending_changes", handlers.GetPendingChanges(db))

	// Documents and exports
	router.GET("/api/quotes/:id/pdf", handlers.GenerateQuotePDF(db))
	router.GET("/api/quotes/:id/qr", handlers.GenerateQuoteQRCodeJPEG(db))
	router.GET("/api/quotes/:id/export_csv", handlers.ExportQuoteCSV(db))
	router.GET("/api/quotes/:id/export_xlsx", handlers.ExportQuoteXLSX(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
