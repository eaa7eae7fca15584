package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/scout/internal/advisor"
	"github.com/jonesrussell/scout/internal/audit"
	"github.com/jonesrussell/scout/internal/jobs"
	"github.com/jonesrussell/scout/internal/logger"
	"github.com/jonesrussell/scout/internal/sse"
	"github.com/jonesrussell/scout/internal/targets"
)

var errIndustryRequired = errors.New("industry is required")

const (
	defaultStreamLimit = 50
	headerJobID        = "X-Job-ID"
	eventMessage       = "message"
)

// StreamAudit starts an audit job and streams its events as Server-Sent
// Events until the job finishes or the client goes away.
func (h *Handler) StreamAudit(c *gin.Context) {
	req, err := parseAuditQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.stream(c, "audit", req.Industry, h.audits.Job(req))
}

// StreamAdvise starts an advisory job and streams it like StreamAudit.
func (h *Handler) StreamAdvise(c *gin.Context) {
	req := advisor.Request{Industry: c.Query("industry"), Notes: c.Query("notes")}
	if req.Industry == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errIndustryRequired.Error()})
		return
	}
	h.stream(c, "advise", req.Industry, h.advisor.Job(req))
}

func (h *Handler) stream(c *gin.Context, kind, industry string, fn jobs.Func) {
	log := logger.FromContext(c.Request.Context())
	job := h.runner.Start(c.Request.Context(), fn)

	sse.SetHeaders(c.Writer)
	c.Header(headerJobID, job.ID)
	c.Status(http.StatusOK)
	c.Writer.Flush()

	log.Debug("Stream opened",
		logger.String("kind", kind),
		logger.String("job_id", job.ID),
		logger.String("industry", industry),
	)

	for ev := range job.Events() {
		if writeErr := sse.Write(c.Writer, toSSE(ev)); writeErr != nil {
			log.Debug("Stream write failed", logger.String("job_id", job.ID), logger.Error(writeErr))
			return
		}
	}
}

func toSSE(ev jobs.Event) sse.Event {
	switch ev.Kind {
	case jobs.KindLog:
		return sse.Event{Type: eventMessage, Data: gin.H{"type": "log", "text": ev.Text}}
	case jobs.KindDone:
		return sse.Event{Type: string(jobs.KindDone), Data: gin.H{"type": "done", "result": ev.Result}}
	case jobs.KindError:
		return sse.Event{Type: string(jobs.KindError), Data: gin.H{"type": "error", "text": ev.Text}}
	default:
		return sse.Event{Type: string(jobs.KindPing), Data: gin.H{"type": "ping"}}
	}
}

func parseAuditQuery(c *gin.Context) (audit.Request, error) {
	req := audit.Request{
		Industry:   c.Query("industry"),
		TargetFile: c.Query("target_file"),
		Inline:     c.Query("targets"),
		Notes:      c.Query("notes"),
		DryRun:     strings.EqualFold(c.Query("dry_run"), "true"),
		Limit:      defaultStreamLimit,
		StoredOnly: true,
		Keywords:   splitList(c.Query("keywords")),
		Locations:  splitList(c.Query("locations")),
	}
	if req.Inline == "" {
		req.Inline = c.Query("target_urls")
	}
	if req.Industry == "" {
		return req, errIndustryRequired
	}
	if req.TargetFile != "" && !targets.ValidName(req.TargetFile) {
		return req, fmt.Errorf("%w: %q", targets.ErrInvalidName, req.TargetFile)
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("invalid limit %q", raw)
		}
		req.Limit = n
	}
	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
