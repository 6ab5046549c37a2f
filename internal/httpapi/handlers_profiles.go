package httpapi

import (
	"net/http"

	"questserver/internal/domain"
)

type profilesResponse struct {
	Profiles []domain.Profile `json:"profiles"`
	Active   string           `json:"active,omitempty"`
}

func (a *api) handleProfilesList(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	profiles, err := a.profileSvc.List(r.Context(), info.Account.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}

	resp := profilesResponse{Profiles: profiles}
	if info.Profile != nil {
		resp.Active = info.Profile.Username
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (a *api) handleProfilesCreate(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req domain.NewProfile
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	p, err := a.profileSvc.Create(r.Context(), info.Account.ID, req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

type chooseProfileRequest struct {
	Profile string `json:"profile"`
}

func (a *api) handleProfilesChoose(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req chooseProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	p, err := a.profileSvc.Choose(r.Context(), info.SessionID, info.Account.ID, req.Profile)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	info.Profile = p
	writeMe(w, http.StatusOK, info)
}

func (a *api) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	settings, err := a.profileSvc.Settings(r.Context(), info.Account.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	DefaultProfile string `json:"default_profile"`
}

func (a *api) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req updateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	if err := a.profileSvc.UpdateSettings(r.Context(), info.Account.ID, req.DefaultProfile); err != nil {
		WriteDomainError(w, err)
		return
	}

	settings, err := a.profileSvc.Settings(r.Context(), info.Account.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}
