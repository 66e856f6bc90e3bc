package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

//go:embed views/*.html
var views embed.FS

// Pages renders the HTML views of the board.
type Pages struct {
	templates      *template.Template
	contextManager model.ContextManager
	logger         *logger.Logger
}

type pageData struct {
	Title string
	User  *model.User
}

func NewPages(contextManager model.ContextManager, logger *logger.Logger) (*Pages, error) {
	templates, err := template.ParseFS(views, "views/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}

	return &Pages{
		templates:      templates,
		contextManager: contextManager,
		logger:         logger,
	}, nil
}

func (p *Pages) Index(w http.ResponseWriter, r *http.Request)  { p.render(w, r, "index.html", "Board") }
func (p *Pages) Create(w http.ResponseWriter, r *http.Request) { p.render(w, r, "create.html", "New post") }
func (p *Pages) Login(w http.ResponseWriter, r *http.Request)  { p.render(w, r, "login.html", "Log in") }
func (p *Pages) Signup(w http.ResponseWriter, r *http.Request) { p.render(w, r, "signup.html", "Sign up") }

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name, title string) {
	data := pageData{Title: title}
	if user, ok := p.contextManager.GetUserFromContext(r.Context()); ok {
		data.User = &user
	}

	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		p.logger.Error("Pages handler: failed to render view",
			"view", name,
			"error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
