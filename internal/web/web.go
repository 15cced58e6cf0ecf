package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/resumetypes"
	"jobapply-backend/internal/shared/telemetry"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Handler serves the server-rendered pages. Forms on these pages call the
// JSON API and render a single status line from its response.
type Handler struct {
	templates *template.Template
	catalog   *resumetypes.Service
}

func NewHandler(catalog *resumetypes.Service) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Handler{templates: tmpl, catalog: catalog}, nil
}

// RegisterRoutes attaches page routes to the root engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.contactPage)
	r.GET("/login", h.page("login.tmpl", "Sign in"))
	r.GET("/signup", h.page("signup.tmpl", "Create account"))
	r.GET("/reset-password", h.page("reset.tmpl", "Reset password"))
	r.GET("/confirm", h.page("confirm.tmpl", "Confirm email"))
	r.GET("/submissions", h.page("submissions.tmpl", "Submissions"))
}

type pageData struct {
	Title       string
	ResumeTypes []resumetypes.ResumeType
}

func (h *Handler) contactPage(c *gin.Context) {
	types, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		// The form still renders; the select is just empty.
		telemetry.Warn("web.catalog_unavailable", map[string]any{"error": err.Error()})
	}
	h.render(c, "contact.tmpl", pageData{Title: "Apply", ResumeTypes: types})
}

func (h *Handler) page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, name, pageData{Title: title})
	}
}

func (h *Handler) render(c *gin.Context, name string, data pageData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		telemetry.Error("web.render_failed", map[string]any{
			"template": name,
			"error":    err.Error(),
		})
	}
}
