package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftcal/app/database"
	"shiftcal/app/processor"
)

type Handler struct {
	importRepo database.ImportRepository
	processor  *processor.Processor
	version    string
}

func NewHandler(importRepo database.ImportRepository, proc *processor.Processor, version string) *Handler {
	return &Handler{
		importRepo: importRepo,
		processor:  proc,
		version:    version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if importCount, err := h.importRepo.GetImportCount(); err == nil {
		health["imports"] = importCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if importCount, err := h.importRepo.GetImportCount(); err == nil {
		stats["imports"] = importCount
	}
	if eventCount, err := h.importRepo.GetEventCount(); err == nil {
		stats["events"] = eventCount
	}

	recent, err := h.importRepo.GetRecentImports(10)
	if err != nil {
		slog.Error("Database error", "operation", "recent_imports", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	recentInfo := make([]map[string]interface{}, 0, len(recent))
	for _, imp := range recent {
		recentInfo = append(recentInfo, map[string]interface{}{
			"source":      imp.Source,
			"filename":    imp.Filename,
			"status":      imp.Status,
			"event_count": imp.EventCount,
			"created_at":  imp.CreatedAt.Format(time.RFC3339),
		})
	}
	stats["recent"] = recentInfo

	c.JSON(http.StatusOK, stats)
}

// CreateImport accepts a multipart schedule image and processes it
// synchronously, mirroring what the Discord listener does for an
// attachment.
func (h *Handler) CreateImport(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'image' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Error("Failed to open upload", "filename", fileHeader.Filename, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read upload", "filename", fileHeader.Filename, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	result := h.processor.Run(c.Request.Context(), "api", fileHeader.Filename, image)

	status := http.StatusOK
	if result.Status == database.ImportStatusFailed {
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{
		"status":      result.Status,
		"event_count": result.EventCount,
		"reply":       result.Reply,
	})
}
