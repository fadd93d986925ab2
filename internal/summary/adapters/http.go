package adapters

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repolens/repolens/internal/summary"
)

// Handler translates HTTP requests into calls on the summary.Service.
type Handler struct {
	svc *summary.Service
	log *slog.Logger
}

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest struct {
	RepoURL string `json:"repo_url" binding:"required"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegisterRoutes mounts the summarization API onto the given Gin engine.
func RegisterRoutes(r *gin.Engine, svc *summary.Service, log *slog.Logger) {
	h := &Handler{svc: svc, log: log}

	r.POST("/summarize", h.Summarize)
	r.GET("/health", h.Health)
}

// Summarize handles POST /summarize — runs the pipeline for one repository
// URL and returns the structured summary.
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: err.Error()})
		return
	}

	result, err := h.svc.Summarize(c.Request.Context(), req.RepoURL)
	if err != nil {
		h.writeError(c, req.RepoURL, err)
		return
	}

	if result.Technologies == nil {
		result.Technologies = []string{}
	}
	c.JSON(http.StatusOK, result)
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps the pipeline error taxonomy onto HTTP statuses. Reference
// and remote-access failures carry safe detail and map to 400; everything
// else surfaces as a generic 500 with full detail kept in the logs only.
func (h *Handler) writeError(c *gin.Context, repoURL string, err error) {
	var invalidRef summary.InvalidReferenceError
	if errors.As(err, &invalidRef) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: err.Error()})
		return
	}

	var remote summary.RemoteAccessError
	if errors.As(err, &remote) {
		h.log.Warn("repository access failed", "url", repoURL, "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: err.Error()})
		return
	}

	h.log.Error("summarization failed", "url", repoURL, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: "error", Message: "An internal server error occurred."})
}
