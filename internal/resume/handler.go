package resume

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

const maxBodyBytes = 1 << 20

// Handler wires HTTP handlers to the resume service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.get)
	rg.PUT("/resume", h.replace)
	rg.PATCH("/resume", h.patch)
	rg.POST("/resume/sample", h.sample)
	rg.GET("/resume/score", h.score)

	rg.GET("/resume/template", h.getTemplate)
	rg.PUT("/resume/template", h.setTemplate)
	rg.GET("/resume/color", h.getColor)
	rg.PUT("/resume/color", h.setColor)

	rg.GET("/resume/submission", h.getSubmission)
	rg.PATCH("/resume/submission", h.patchSubmission)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, View{Data: d, Score: Score(d)})
}

func (h *Handler) replace(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	view, err := h.Svc.Replace(c.Request.Context(), middleware.UserIDFromContext(c), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) patch(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	view, err := h.Svc.Patch(c.Request.Context(), middleware.UserIDFromContext(c), body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) sample(c *gin.Context) {
	view, err := h.Svc.LoadSample(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) score(c *gin.Context) {
	score, err := h.Svc.Score(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, score)
}

type templateBody struct {
	Template Template `json:"template"`
}

func (h *Handler) getTemplate(c *gin.Context) {
	t, err := h.Svc.Template(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, templateBody{Template: t})
}

func (h *Handler) setTemplate(c *gin.Context) {
	var req templateBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	t, err := h.Svc.SetTemplate(c.Request.Context(), middleware.UserIDFromContext(c), req.Template)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, templateBody{Template: t})
}

type colorBody struct {
	Color string `json:"color"`
}

func (h *Handler) getColor(c *gin.Context) {
	color, err := h.Svc.Color(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, colorBody{Color: color})
}

func (h *Handler) setColor(c *gin.Context) {
	var req colorBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	color, err := h.Svc.SetColor(c.Request.Context(), middleware.UserIDFromContext(c), req.Color)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, colorBody{Color: color})
}

func (h *Handler) getSubmission(c *gin.Context) {
	sub, err := h.Svc.Submission(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, sub)
}

func (h *Handler) patchSubmission(c *gin.Context) {
	var req SubmissionPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	sub, err := h.Svc.PatchSubmission(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, sub)
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", gin.H{"maxBytes": maxBodyBytes})
			return nil, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return nil, false
	}
	return body, true
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidInput) {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "resume storage failed", nil)
}
