package handlers

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"estimator/models"
	"estimator/repository"
	"estimator/services"

	"github.com/gin-gonic/gin"
)

// notifyLockedQuote fans a freshly locked version out to the client email
// and the Monday.com board. Both are best-effort; the lock itself already
// committed.
func notifyLockedQuote(quote models.Quote, versionNumber int) {
	go func() {
		if quote.ClientEmail != "" {
			if err := services.NewEmailService().SendQuoteEmail(quote, versionNumber); err != nil {
				log.Printf("Failed to email quote %s: %v", quote.ID, err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := services.NewMondayService().PushLockedQuote(ctx, quote, versionNumber); err != nil {
			log.Printf("Failed to push quote %s to board: %v", quote.ID, err)
		}
	}()
}

// LockQuote locks a draft quote into an immutable version
// @Summary Lock quote
// @Description Freezes the current working copy. A locked quote rejects edits until an amendment is started. Locking an already locked quote is a no-op.
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotes/{id}/lock [post]
func LockQuote(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		quote, _, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if rec.IsLocked {
			c.JSON(http.StatusOK, models.QuoteResponse{
				Success: true,
				Message: "Quote is already locked",
				Data:    &quote,
				Status:  models.QuoteStatusLocked,
			})
			return
		}
		if rec.Status == models.QuoteStatusAmended {
			c.JSON(http.StatusConflict, gin.H{"error": "Quote has an active amendment, finalize or discard it first"})
			return
		}

		if err := repository.SetQuoteStatus(db, quoteID, models.QuoteStatusLocked, true); err != nil {
			log.Printf("Failed to lock quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock quote"})
			return
		}

		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		notifyLockedQuote(quote, version.VersionNumber)

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Quote locked successfully",
			Data:    &quote,
			Status:  models.QuoteStatusLocked,
		})
	}
}

// StartAmendment reopens a locked quote for editing
// @Summary Start amendment
// @Description Captures a pre-edit snapshot and opens a new working version. Only locked quotes can be amended.
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/quotes/{id}/amendments [post]
func StartAmendment(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rec.Status != models.QuoteStatusLocked {
			c.JSON(http.StatusConflict, gin.H{"error": "Only a locked quote can be amended"})
			return
		}

		quote, _, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if err := repository.SaveAmendmentSnapshot(db, quoteID, quote); err != nil {
			log.Printf("Failed to save amendment snapshot for quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start amendment"})
			return
		}

		if _, err := repository.BeginWorkingVersion(db, quoteID, quote.Sections, quote.LineItems, quote.Total()); err != nil {
			log.Printf("Failed to open working version for quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start amendment"})
			return
		}

		if err := repository.SetQuoteStatus(db, quoteID, models.QuoteStatusAmended, false); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start amendment"})
			return
		}

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Amendment started",
			Data:    &quote,
			Status:  models.QuoteStatusAmended,
		})
	}
}

// FinalizeAmendment locks the amended quote into its next version
// @Summary Finalize amendment
// @Description Computes the change records against the pre-edit snapshot, attaches them to the new version and locks the quote.
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.ChangeListResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/quotes/{id}/amendments/finalize [post]
func FinalizeAmendment(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rec.Status != models.QuoteStatusAmended {
			c.JSON(http.StatusConflict, gin.H{"error": "No active amendment to finalize"})
			return
		}

		snapshot, err := repository.LoadAmendmentSnapshot(db, quoteID)
		if err != nil || snapshot == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No amendment snapshot found"})
			return
		}

		quote, _, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		changes := services.DiffLineItems(snapshot.LineItems, quote.LineItems)

		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := repository.InsertChangeRecords(db, version.ID, changes); err != nil {
			log.Printf("Failed to record changes for quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize amendment"})
			return
		}

		if err := repository.DeleteAmendmentSnapshot(db, quoteID); err != nil {
			log.Printf("Failed to clear amendment snapshot for quote %s: %v", quoteID, err)
		}
		if err := repository.SetQuoteStatus(db, quoteID, models.QuoteStatusLocked, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize amendment"})
			return
		}

		notifyLockedQuote(quote, version.VersionNumber)

		c.JSON(http.StatusOK, models.ChangeListResponse{
			Success: true,
			Message: "Amendment finalized",
			Data:    changes,
		})
	}
}

// DiscardAmendment abandons the active amendment
// @Summary Discard amendment
// @Description Drops the working version and restores the last locked version exactly. No new version is created.
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/quotes/{id}/amendments/discard [post]
func DiscardAmendment(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rec.Status != models.QuoteStatusAmended {
			c.JSON(http.StatusConflict, gin.H{"error": "No active amendment to discard"})
			return
		}

		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := repository.DropWorkingVersion(db, quoteID, version.ID); err != nil {
			log.Printf("Failed to drop working version for quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discard amendment"})
			return
		}
		if err := repository.DeleteAmendmentSnapshot(db, quoteID); err != nil {
			log.Printf("Failed to clear amendment snapshot for quote %s: %v", quoteID, err)
		}
		if err := repository.SetQuoteStatus(db, quoteID, models.QuoteStatusLocked, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to discard amendment"})
			return
		}

		quote, _, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Amendment discarded",
			Data:    &quote,
			Status:  models.QuoteStatusLocked,
		})
	}
}

// ListQuoteVersions lists the versions of a quote
// @Summary List quote versions
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteVersionListResponse
// @Router /api/quotes/{id}/versions [get]
func ListQuoteVersions(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := repository.ListVersions(db, c.Param("id"))
		if err != nil {
			log.Printf("Failed to list versions: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch versions"})
			return
		}

		c.JSON(http.StatusOK, models.QuoteVersionListResponse{
			Success: true,
			Message: "Versions fetched successfully",
			Data:    records,
		})
	}
}

// ListVersionChanges lists the change records of one version
// @Summary List version changes
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Param version_id path string true "Version ID"
// @Success 200 {object} models.ChangeListResponse
// @Router /api/quotes/{id}/versions/{version_id}/changes [get]
func ListVersionChanges(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		changes, err := repository.ListChanges(db, c.Param("version_id"))
		if err != nil {
			log.Printf("Failed to list changes: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch changes"})
			return
		}

		c.JSON(http.StatusOK, models.ChangeListResponse{
			Success: true,
			Message: "Changes fetched successfully",
			Data:    changes,
		})
	}
}

// GetPendingChanges returns the live diff of the active amendment
// @Summary Get pending amendment changes
// @Description Recomputes the full diff of the pre-edit snapshot against the current working copy. Empty when no amendment is active.
// @Tags Quote Versions
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.ChangeListResponse
// @Router /api/quotes/{id}/pending_changes [get]
func GetPendingChanges(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		snapshot, err := repository.LoadAmendmentSnapshot(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if snapshot == nil {
			c.JSON(http.StatusOK, models.ChangeListResponse{
				Success: true,
				Message: "No amendment in progress",
			})
			return
		}

		quote, _, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.ChangeListResponse{
			Success: true,
			Message: "Pending changes computed",
			Data:    services.DiffLineItems(snapshot.LineItems, quote.LineItems),
		})
	}
}
