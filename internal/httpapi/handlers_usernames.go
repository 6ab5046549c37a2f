package httpapi

import (
	"net/http"

	"questserver/internal/username"
)

type slugifyRequest struct {
	Text string `json:"text"`
}

type slugifyResponse struct {
	Username string `json:"username"`
	Valid    bool   `json:"valid"`
}

func (a *api) handleUsernamesSlugify(w http.ResponseWriter, r *http.Request) {
	var req slugifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	slug := username.Slugify(req.Text)
	WriteJSON(w, http.StatusOK, slugifyResponse{Username: slug, Valid: username.Valid(slug)})
}

func (a *api) handleUsernamesAvailability(w http.ResponseWriter, r *http.Request) {
	avail, err := a.profileSvc.CheckAvailability(r.Context(), r.PathValue("username"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, avail)
}
