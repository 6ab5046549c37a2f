package userui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"questserver/internal/auth"
	"questserver/internal/domain"
)

const (
	loginUnavailableMsg    = "Login is unavailable. Set QUEST_DB_DSN and restart the server."
	registerUnavailableMsg = "Registration is unavailable. Set QUEST_DB_DSN and restart the server."
	uiUnavailableMsg       = "This page is unavailable. Set QUEST_DB_DSN and restart the server."
)

func (a *app) view(r *http.Request, title string) viewData {
	info := sessionFrom(r.Context())
	return viewData{
		Title:    title,
		SiteName: a.siteName,
		Profile:  info.Profile,
		SignedIn: info.SessionID != "",
		Notice:   mapNotice(strings.TrimSpace(r.URL.Query().Get("notice"))),
	}
}

func (a *app) renderError(w http.ResponseWriter, status int, title, msg string) {
	a.templates.renderErrorPage(w, status, viewData{Title: title, SiteName: a.siteName, Error: msg})
}

func (a *app) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	data := loginViewData{viewData: a.view(r, "Sign in")}
	if a.authSvc == nil {
		data.Error = loginUnavailableMsg
		a.templates.renderLogin(w, http.StatusServiceUnavailable, data)
		return
	}
	if _, ok := a.currentSession(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}
	a.templates.renderLogin(w, http.StatusOK, data)
}

func (a *app) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	data := loginViewData{viewData: a.view(r, "Sign in")}
	if a.authSvc == nil {
		data.Error = loginUnavailableMsg
		a.templates.renderLogin(w, http.StatusServiceUnavailable, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form"
		a.templates.renderLogin(w, http.StatusBadRequest, data)
		return
	}

	data.Email = strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if data.Email == "" || password == "" {
		data.Error = "Email and password are required"
		a.templates.renderLogin(w, http.StatusBadRequest, data)
		return
	}

	info, err := a.authSvc.Login(r.Context(), data.Email, password, clientIP(r), r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			data.Error = "Invalid email or password"
			a.templates.renderLogin(w, http.StatusUnauthorized, data)
		case errors.Is(err, domain.ErrAccountDisabled):
			data.Error = "Account disabled"
			a.templates.renderLogin(w, http.StatusForbidden, data)
		default:
			a.logger.Error("userui: login failed", "err", err)
			data.Error = "Login failed"
			a.templates.renderLogin(w, http.StatusInternalServerError, data)
		}
		return
	}

	auth.SetSessionCookie(w, a.cookieCodec.Sign(info.SessionID), a.sessionTTL, a.cookieSecure)

	if a.profileSvc != nil {
		settings, err := a.profileSvc.Settings(r.Context(), info.Account.ID)
		if err != nil {
			a.logger.Warn("userui: load settings after login", "err", err)
		} else if settings.AskForProfileOnLogin {
			http.Redirect(w, r, "/app/profiles/choose", http.StatusFound)
			return
		}
	}
	redirectWithNotice(w, r, "/app/", "login_success")
}

func (a *app) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	data := registerViewData{viewData: a.view(r, "Create account")}
	if a.authSvc == nil {
		data.Error = registerUnavailableMsg
		a.templates.renderRegister(w, http.StatusServiceUnavailable, data)
		return
	}
	if _, ok := a.currentSession(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}

	formID, err := a.newFormID()
	if err != nil {
		a.logger.Error("userui: issue form id", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Could not start registration")
		return
	}
	data.FormID = formID
	a.templates.renderRegister(w, http.StatusOK, data)
}

func (a *app) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	data := registerViewData{viewData: a.view(r, "Create account")}
	if a.authSvc == nil {
		data.Error = registerUnavailableMsg
		a.templates.renderRegister(w, http.StatusServiceUnavailable, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form"
		a.templates.renderRegister(w, http.StatusBadRequest, data)
		return
	}

	data.Email = strings.TrimSpace(r.FormValue("email"))
	data.ProfileForm = a.readProfileForm(r)

	var np *domain.NewProfile
	if data.DisplayName != "" || data.Username != "" {
		np = &domain.NewProfile{DisplayName: data.DisplayName, Username: data.Username, Bio: data.Bio}
	}

	info, err := a.authSvc.Register(r.Context(), data.Email, r.FormValue("password"), np, clientIP(r), r.UserAgent())
	if err != nil {
		status := http.StatusBadRequest
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			data.Fields = verr.Fields
			data.Error = "Please fix the highlighted fields."
		case errors.Is(err, domain.ErrEmailTaken):
			data.Error = "That email is already in use."
		case errors.Is(err, domain.ErrUsernameTaken):
			data.Fields = map[string]string{"username": "@" + data.Username + " is already taken"}
			data.Error = "That username is taken."
		default:
			a.logger.Error("userui: register failed", "err", err)
			status = http.StatusInternalServerError
			data.Error = "Registration failed."
		}
		a.templates.renderRegister(w, status, data)
		return
	}

	auth.SetSessionCookie(w, a.cookieCodec.Sign(info.SessionID), a.sessionTTL, a.cookieSecure)
	redirectWithNotice(w, r, "/app/", "registered")
}

func (a *app) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	if info, ok := a.currentSession(r); ok {
		if err := a.authSvc.Logout(r.Context(), info.SessionID); err != nil {
			a.logger.Warn("userui: logout", "err", err)
		}
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	http.Redirect(w, r, "/app/login", http.StatusFound)
}

func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
	a.templates.renderHome(w, http.StatusOK, a.view(r, "Home"))
}

func (a *app) handleProfilesGet(w http.ResponseWriter, r *http.Request) {
	info := sessionFrom(r.Context())
	profiles, err := a.profileSvc.List(r.Context(), info.Account.ID)
	if err != nil {
		a.logger.Error("userui: list profiles", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Failed to load profiles")
		return
	}
	a.templates.renderProfiles(w, http.StatusOK, profilesViewData{viewData: a.view(r, "Profiles"), Profiles: profiles})
}

func (a *app) handleProfileNewGet(w http.ResponseWriter, r *http.Request) {
	formID, err := a.newFormID()
	if err != nil {
		a.logger.Error("userui: issue form id", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Could not start a new profile")
		return
	}
	data := profileNewViewData{viewData: a.view(r, "New profile")}
	data.FormID = formID
	a.templates.renderProfileNew(w, http.StatusOK, data)
}

func (a *app) handleProfilesPost(w http.ResponseWriter, r *http.Request) {
	data := profileNewViewData{viewData: a.view(r, "New profile")}
	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form"
		a.templates.renderProfileNew(w, http.StatusBadRequest, data)
		return
	}
	data.ProfileForm = a.readProfileForm(r)

	info := sessionFrom(r.Context())
	p, err := a.profileSvc.Create(r.Context(), info.Account.ID, domain.NewProfile{
		DisplayName: data.DisplayName,
		Username:    data.Username,
		Bio:         data.Bio,
	})
	if err != nil {
		status := http.StatusBadRequest
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			data.Fields = verr.Fields
			data.Error = "Please fix the highlighted fields."
		case errors.Is(err, domain.ErrUsernameTaken):
			data.Fields = map[string]string{"username": "@" + data.Username + " is already taken"}
			data.Error = "That username is taken."
		default:
			a.logger.Error("userui: create profile", "err", err)
			status = http.StatusInternalServerError
			data.Error = "Could not create the profile."
		}
		a.templates.renderProfileNew(w, status, data)
		return
	}

	if info.Profile == nil {
		if _, err := a.profileSvc.Choose(r.Context(), info.SessionID, info.Account.ID, p.Username); err != nil {
			a.logger.Warn("userui: activate new profile", "err", err)
		}
	}
	redirectWithNotice(w, r, "/app/profiles", "profile_created")
}

func (a *app) handleChooseGet(w http.ResponseWriter, r *http.Request) {
	info := sessionFrom(r.Context())
	profiles, err := a.profileSvc.List(r.Context(), info.Account.ID)
	if err != nil {
		a.logger.Error("userui: list profiles", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Failed to load profiles")
		return
	}
	a.templates.renderChoose(w, http.StatusOK, chooseViewData{viewData: a.view(r, "Choose a profile"), Profiles: profiles})
}

func (a *app) handleChoosePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, http.StatusBadRequest, "Error", "Invalid form")
		return
	}

	info := sessionFrom(r.Context())
	_, err := a.profileSvc.Choose(r.Context(), info.SessionID, info.Account.ID, r.FormValue("profile"))
	switch {
	case err == nil:
		redirectWithNotice(w, r, "/app/", "profile_chosen")
	case errors.Is(err, domain.ErrNotProfileOwner), errors.Is(err, domain.ErrValidation):
		a.renderError(w, http.StatusForbidden, "Not your profile", "You can only act as profiles you own.")
	default:
		a.logger.Error("userui: choose profile", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Could not switch profile")
	}
}

func (a *app) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	a.renderSettings(w, r, http.StatusOK, "")
}

func (a *app) handleSettingsPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderSettings(w, r, http.StatusBadRequest, "Invalid form")
		return
	}

	info := sessionFrom(r.Context())
	err := a.profileSvc.UpdateSettings(r.Context(), info.Account.ID, r.FormValue("default_profile"))
	switch {
	case err == nil:
		redirectWithNotice(w, r, "/app/settings", "settings_saved")
	case errors.Is(err, domain.ErrNotProfileOwner), errors.Is(err, domain.ErrValidation):
		a.renderSettings(w, r, http.StatusBadRequest, "Pick one of your profiles.")
	default:
		a.logger.Error("userui: update settings", "err", err)
		a.renderSettings(w, r, http.StatusInternalServerError, "Could not save settings.")
	}
}

func (a *app) renderSettings(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	info := sessionFrom(r.Context())
	settings, err := a.profileSvc.Settings(r.Context(), info.Account.ID)
	if err != nil {
		a.logger.Error("userui: load settings", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Failed to load settings")
		return
	}
	profiles, err := a.profileSvc.List(r.Context(), info.Account.ID)
	if err != nil {
		a.logger.Error("userui: list profiles", "err", err)
		a.renderError(w, http.StatusInternalServerError, "Error", "Failed to load profiles")
		return
	}

	data := settingsViewData{viewData: a.view(r, "Settings"), Profiles: profiles}
	data.Error = errMsg
	switch {
	case settings.AskForProfileOnLogin:
		data.Current = domain.ChoiceAsk
	case settings.DefaultProfileUsername != "":
		data.Current = settings.DefaultProfileUsername
	default:
		data.Current = domain.ChoiceReader
	}
	a.templates.renderSettings(w, status, data)
}

// readProfileForm reads the profile fields of a parsed form. A form id that
// fails verification is replaced so the live check keeps working.
func (a *app) readProfileForm(r *http.Request) ProfileForm {
	pf := ProfileForm{
		DisplayName: strings.TrimSpace(r.FormValue("display_name")),
		Username:    strings.TrimSpace(r.FormValue("username")),
		Bio:         strings.TrimSpace(r.FormValue("bio")),
	}
	if _, ok := a.cookieCodec.Verify(r.FormValue("form_id")); ok {
		pf.FormID = r.FormValue("form_id")
	} else if id, err := a.newFormID(); err == nil {
		pf.FormID = id
	}
	return pf
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, target, notice string) {
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func mapNotice(code string) string {
	switch code {
	case "login_success":
		return "Welcome back."
	case "registered":
		return "Welcome! Your account is ready."
	case "profile_created":
		return "Profile created."
	case "profile_chosen":
		return "Profile switched."
	case "settings_saved":
		return "Settings saved."
	default:
		return ""
	}
}
