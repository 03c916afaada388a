package history

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/analysis"
	"placement-backend/internal/extract"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
	"placement-backend/internal/shared/util"
)

const defaultMaxUploadBytes = 5 << 20

// Handler wires HTTP handlers to the history service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis and history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.POST("/analyses/upload", h.analyzeUpload)
	rg.POST("/analyses/preview", h.preview)

	rg.GET("/history", h.list)
	rg.DELETE("/history", h.clear)
	rg.GET("/history/latest", h.latest)
	rg.GET("/history/:id", h.get)
	rg.GET("/history/:id/export", h.export)
	rg.GET("/history/:id/weak-skills", h.weakSkills)
	rg.POST("/history/:id/skills/toggle", h.toggleSkill)
	rg.PUT("/history/:id/skills", h.setSkills)
}

type analyzeRequest struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	JDText  string `json:"jdText"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	h.saveAnalysis(c, analysis.Input{JDText: req.JDText, Company: req.Company, Role: req.Role})
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"maxBytes": h.MaxUploadBytes})
		return
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.MaxUploadBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	text, err := extract.Text(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), name)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file", "upload a PDF, DOCX or text file", nil)
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not read text from file", nil)
		return
	}

	h.saveAnalysis(c, analysis.Input{
		JDText:  text,
		Company: c.PostForm("company"),
		Role:    c.PostForm("role"),
	})
}

func (h *Handler) saveAnalysis(c *gin.Context, in analysis.Input) {
	entry, err := h.Svc.Analyze(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to save analysis")
		return
	}
	c.Set(middleware.EntryIDKey, entry.ID)
	respond.JSON(c, http.StatusCreated, entry)
}

func (h *Handler) preview(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.Preview(analysis.Input{JDText: req.JDText, Company: req.Company, Role: req.Role})
	if err != nil {
		writeError(c, err, "failed to analyze")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to list history")
		return
	}
	respond.OK(c, gin.H{"entries": entries})
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), middleware.UserIDFromContext(c)); err != nil {
		writeError(c, err, "failed to clear history")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) latest(c *gin.Context) {
	entry, err := h.Svc.Latest(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to fetch history")
		return
	}
	c.Set(middleware.EntryIDKey, entry.ID)
	respond.OK(c, entry)
}

func (h *Handler) get(c *gin.Context) {
	id := entryID(c)
	entry, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch history")
		return
	}
	respond.OK(c, entry)
}

func (h *Handler) export(c *gin.Context) {
	name, body, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), entryID(c))
	if err != nil {
		writeError(c, err, "failed to export plan")
		return
	}
	respond.Text(c, name, body)
}

func (h *Handler) weakSkills(c *gin.Context) {
	skills, err := h.Svc.WeakSkills(c.Request.Context(), middleware.UserIDFromContext(c), entryID(c))
	if err != nil {
		writeError(c, err, "failed to fetch weak skills")
		return
	}
	respond.OK(c, gin.H{"skills": skills})
}

type toggleRequest struct {
	Skill string `json:"skill"`
}

func (h *Handler) toggleSkill(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.ToggleSkill(c.Request.Context(), middleware.UserIDFromContext(c), entryID(c), req.Skill)
	if err != nil {
		writeError(c, err, "failed to update skill")
		return
	}
	respond.OK(c, result)
}

type setSkillsRequest struct {
	SkillConfidenceMap map[string]analysis.Confidence `json:"skillConfidenceMap"`
}

func (h *Handler) setSkills(c *gin.Context) {
	var req setSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	score, err := h.Svc.SetConfidence(c.Request.Context(), middleware.UserIDFromContext(c), entryID(c), req.SkillConfidenceMap)
	if err != nil {
		writeError(c, err, "failed to update skills")
		return
	}
	respond.OK(c, gin.H{"liveScore": score})
}

func entryID(c *gin.Context) string {
	id := strings.TrimSpace(c.Param("id"))
	c.Set(middleware.EntryIDKey, id)
	return id
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrJDTooShort):
		respond.Error(c, http.StatusBadRequest, "jd_too_short", "This notification is too short for a deep analysis. Paste the full description for better output.", gin.H{"minLength": MinJDLength})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "history entry not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
