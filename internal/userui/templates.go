package userui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"questserver/internal/domain"
	"questserver/internal/username"
)

//go:embed templates static
var assets embed.FS

type templates struct {
	login      *template.Template
	register   *template.Template
	home       *template.Template
	profiles   *template.Template
	profileNew *template.Template
	choose     *template.Template
	settings   *template.Template
	feedback   *template.Template
	errorT     *template.Template
}

type viewData struct {
	Title    string
	SiteName string
	Profile  *domain.Profile
	SignedIn bool
	Error    string
	Notice   string
}

type loginViewData struct {
	viewData
	Email string
}

// ProfileForm carries the fields of any form that claims a username. FormID
// keys the live username check for this form.
type ProfileForm struct {
	FormID      string
	DisplayName string
	Username    string
	Bio         string
	Fields      map[string]string
}

type registerViewData struct {
	viewData
	ProfileForm
	Email string
}

type profileNewViewData struct {
	viewData
	ProfileForm
}

type profilesViewData struct {
	viewData
	Profiles []domain.Profile
}

type chooseViewData struct {
	viewData
	Profiles []domain.Profile
}

type settingsViewData struct {
	viewData
	Profiles []domain.Profile
	Current  string
}

func parseTemplates() (*templates, error) {
	parse := func(files ...string) (*template.Template, error) {
		files = append([]string{"templates/layout.html", "templates/feedback.html"}, files...)
		return template.New("base").ParseFS(assets, files...)
	}

	t := &templates{}
	pages := map[string]**template.Template{
		"login.html":       &t.login,
		"register.html":    &t.register,
		"home.html":        &t.home,
		"profiles.html":    &t.profiles,
		"profile_new.html": &t.profileNew,
		"choose.html":      &t.choose,
		"settings.html":    &t.settings,
		"error.html":       &t.errorT,
	}
	for name, dst := range pages {
		parsed, err := parse("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		*dst = parsed
	}

	feedback, err := template.New("base").ParseFS(assets, "templates/feedback.html")
	if err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}
	t.feedback = feedback
	return t, nil
}

func render(w http.ResponseWriter, t *template.Template, name string, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.ExecuteTemplate(w, name, data)
}

func (t *templates) renderLogin(w http.ResponseWriter, status int, data loginViewData) {
	render(w, t.login, "login.html", status, data)
}

func (t *templates) renderRegister(w http.ResponseWriter, status int, data registerViewData) {
	render(w, t.register, "register.html", status, data)
}

func (t *templates) renderHome(w http.ResponseWriter, status int, data viewData) {
	render(w, t.home, "home.html", status, data)
}

func (t *templates) renderProfiles(w http.ResponseWriter, status int, data profilesViewData) {
	render(w, t.profiles, "profiles.html", status, data)
}

func (t *templates) renderProfileNew(w http.ResponseWriter, status int, data profileNewViewData) {
	render(w, t.profileNew, "profile_new.html", status, data)
}

func (t *templates) renderChoose(w http.ResponseWriter, status int, data chooseViewData) {
	render(w, t.choose, "choose.html", status, data)
}

func (t *templates) renderSettings(w http.ResponseWriter, status int, data settingsViewData) {
	render(w, t.settings, "settings.html", status, data)
}

// renderFeedback writes the fragment swapped into the username validation
// target.
func (t *templates) renderFeedback(w http.ResponseWriter, status int, fb username.Feedback) {
	render(w, t.feedback, "feedback", status, fb)
}

func (t *templates) renderErrorPage(w http.ResponseWriter, status int, data viewData) {
	render(w, t.errorT, "error.html", status, data)
}
