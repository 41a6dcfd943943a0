package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"portfolio/internal/codec"
	"portfolio/internal/domain"
	"portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

var contentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/x-yaml",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Options configures the router
type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

// PortfolioHandler handles the public API
type PortfolioHandler struct {
	svc *service.PortfolioService
}

// NewRouter builds the gin engine with all middleware and routes
func NewRouter(svc *service.PortfolioService, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(CORS(opts.AllowedOrigins))
	r.Use(RequestID())
	r.Use(AccessLog(logger))
	r.Use(Recovery(logger))
	r.Use(ErrorHandler(logger))

	h := &PortfolioHandler{svc: svc}
	api := r.Group("/api")
	api.GET("/skills", h.ListSkills)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:id", h.GetProject)
	api.GET("/experience", h.ListExperience)
	api.GET("/education", h.ListEducation)
	api.POST("/contact", h.SubmitContact)
	api.GET("/export", h.Export)
	api.GET("/health", h.Health)

	return r
}

func (h *PortfolioHandler) ListSkills(c *gin.Context) {
	skills, err := h.svc.Skills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *PortfolioHandler) ListProjects(c *gin.Context) {
	projects, err := h.svc.Projects(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject answers 404 for unknown and non-numeric ids alike
func (h *PortfolioHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(NotFound("Project not found"))
		return
	}

	project, err := h.svc.Project(c.Request.Context(), id)
	if errors.Is(err, service.ErrProjectNotFound) {
		c.Error(NotFound("Project not found"))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *PortfolioHandler) ListExperience(c *gin.Context) {
	entries, err := h.svc.Experience(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *PortfolioHandler) ListEducation(c *gin.Context) {
	entries, err := h.svc.Education(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// SubmitContact stores a visitor message
func (h *PortfolioHandler) SubmitContact(c *gin.Context) {
	var in domain.MessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.Error(bindError(err))
		return
	}

	_, err := h.svc.SubmitContact(c.Request.Context(), in)
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.Error(BadRequest(vErr.Message, vErr.Field))
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// bindError names the offending field when the body is well-formed JSON
// with a value of the wrong type
func bindError(err error) *AppError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return BadRequest(fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()), typeErr.Field)
	}
	return BadRequest("Invalid request body", "")
}

// Export downloads the current content in the requested format
func (h *PortfolioHandler) Export(c *gin.Context) {
	exporter, err := codec.ExporterFor(c.DefaultQuery("format", "json"))
	if err != nil {
		c.Error(BadRequest(err.Error(), "format"))
		return
	}

	ds, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(ds, &buf); err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio.%s", exporter.Format()))
	c.Data(http.StatusOK, contentTypes[exporter.Format()], buf.Bytes())
}

// Health reports liveness and the active backend
func (h *PortfolioHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"backend": h.svc.Backend(),
	})
}
