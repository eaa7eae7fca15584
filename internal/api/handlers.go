package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/scout/internal/advisor"
	"github.com/jonesrussell/scout/internal/audit"
	"github.com/jonesrussell/scout/internal/industry"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/report"
	"github.com/jonesrussell/scout/internal/targets"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "scout"

// Handler serves the scout API.
type Handler struct {
	catalog    *industry.Catalog
	audits     *audit.Service
	advisor    *advisor.Service
	runner     *jobs.Runner
	reportsDir string
	targetsDir string
	version    string
	started    time.Time
}

// HandlerConfig carries the Handler's collaborators.
type HandlerConfig struct {
	Catalog    *industry.Catalog
	Audits     *audit.Service
	Advisor    *advisor.Service
	Runner     *jobs.Runner
	ReportsDir string
	TargetsDir string
	Version    string
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		catalog:    cfg.Catalog,
		audits:     cfg.Audits,
		advisor:    cfg.Advisor,
		runner:     cfg.Runner,
		reportsDir: cfg.ReportsDir,
		targetsDir: cfg.TargetsDir,
		version:    cfg.Version,
		started:    time.Now(),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// ListIndustries returns a summary of every profile.
func (h *Handler) ListIndustries(c *gin.Context) {
	summaries, err := h.catalog.Summaries()
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if summaries == nil {
		summaries = []industry.Summary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// GetIndustry returns a single profile.
func (h *Handler) GetIndustry(c *gin.Context) {
	profile, err := h.catalog.Load(c.Param("slug"), industry.LoadOptions{})
	if err != nil {
		h.industryError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// industryDocument is the request body for writing a profile.
type industryDocument struct {
	Slug string `json:"slug"`
	YAML string `json:"yaml" binding:"required"`
}

// CreateIndustry stores a new profile.
func (h *Handler) CreateIndustry(c *gin.Context) {
	var doc industryDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	profile, err := h.catalog.Create(doc.Slug, []byte(doc.YAML))
	if err != nil {
		h.industryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// UpdateIndustry replaces a stored profile after validating it.
func (h *Handler) UpdateIndustry(c *gin.Context) {
	var doc industryDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	profile, err := h.catalog.Update(c.Param("slug"), []byte(doc.YAML))
	if err != nil {
		h.industryError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteIndustry removes a stored profile.
func (h *Handler) DeleteIndustry(c *gin.Context) {
	if err := h.catalog.Delete(c.Param("slug")); err != nil {
		h.industryError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *Handler) industryError(c *gin.Context, err error) {
	var verr *industry.ValidationError
	switch {
	case errors.Is(err, industry.ErrNotFound):
		h.fail(c, http.StatusNotFound, err)
	case errors.Is(err, industry.ErrExists):
		h.fail(c, http.StatusConflict, err)
	case errors.Is(err, industry.ErrInvalidSlug),
		errors.Is(err, industry.ErrSlugMismatch),
		errors.Is(err, industry.ErrMalformed):
		h.fail(c, http.StatusBadRequest, err)
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "missing": verr.Missing})
	default:
		h.fail(c, http.StatusInternalServerError, err)
	}
}

// ListTargets returns the stored target lists.
func (h *Handler) ListTargets(c *gin.Context) {
	files, err := targets.ListFiles(h.targetsDir)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if files == nil {
		files = []targets.File{}
	}
	c.JSON(http.StatusOK, files)
}

// ListReports returns every stored report file.
func (h *Handler) ListReports(c *gin.Context) {
	entries, err := report.List(h.reportsDir)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []report.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GetReport returns a report's content and format.
func (h *Handler) GetReport(c *gin.Context) {
	path, ok := h.reportPath(c)
	if !ok {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		h.reportReadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": string(data),
		"format":  strings.TrimPrefix(filepath.Ext(path), "."),
	})
}

// DownloadReport serves a report file as an attachment.
func (h *Handler) DownloadReport(c *gin.Context) {
	path, ok := h.reportPath(c)
	if !ok {
		return
	}
	if _, err := os.Stat(path); err != nil {
		h.reportReadError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *Handler) reportPath(c *gin.Context) (string, bool) {
	path, err := report.Path(h.reportsDir, c.Param("slug"), c.Param("file"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return "", false
	}
	return path, true
}

func (h *Handler) reportReadError(c *gin.Context, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.fail(c, http.StatusInternalServerError, err)
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("Request failed", logger.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
