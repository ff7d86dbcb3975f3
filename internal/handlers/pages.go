package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageTemplates parses the embedded page templates for the router.
func PageTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// StaticFiles exposes the embedded static assets for the /static route.
func StaticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// PagesHandler serves the application shell for the browser routes. The guard
// middleware in front of each route decides who gets the page; the handler
// itself only renders.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) render(c *gin.Context, page, title string) {
	c.HTML(http.StatusOK, "shell.html", gin.H{
		"Page":  page,
		"Title": title,
	})
}

func (h *PagesHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PagesHandler) Auth(c *gin.Context)       { h.render(c, "auth", "Anmelden") }
func (h *PagesHandler) AdminAuth(c *gin.Context)  { h.render(c, "admin-auth", "Admin Anmeldung") }
func (h *PagesHandler) Onboarding(c *gin.Context) { h.render(c, "onboarding", "Willkommen") }
func (h *PagesHandler) Contact(c *gin.Context)    { h.render(c, "contact", "Kontakt") }
func (h *PagesHandler) Dashboard(c *gin.Context)  { h.render(c, "dashboard", "Dashboard") }
func (h *PagesHandler) Orders(c *gin.Context)     { h.render(c, "orders", "Bestellungen") }
func (h *PagesHandler) OrderFlow(c *gin.Context)  { h.render(c, "order-flow", "Neue Bestellung") }
func (h *PagesHandler) Profile(c *gin.Context)    { h.render(c, "profile", "Profil") }
func (h *PagesHandler) Management(c *gin.Context) { h.render(c, "management", "Verwaltung") }

func (h *PagesHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "shell.html", gin.H{
		"Page":  "not-found",
		"Title": "Seite nicht gefunden",
	})
}
