package httpapi

import (
	"net/http"
	"time"

	"questserver/internal/domain"
)

type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// meResponse describes the caller. Profile is null in reader mode.
type meResponse struct {
	Account accountResponse `json:"account"`
	Profile *domain.Profile `json:"profile"`
}

func writeMe(w http.ResponseWriter, status int, info domain.SessionInfo) {
	WriteJSON(w, status, meResponse{
		Account: accountResponse{
			ID:        info.Account.ID,
			Email:     info.Account.Email,
			CreatedAt: info.Account.CreatedAt,
		},
		Profile: info.Profile,
	})
}

func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentSession(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeMe(w, http.StatusOK, info)
}
