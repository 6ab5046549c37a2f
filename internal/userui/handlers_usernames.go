package userui

import (
	"errors"
	"net/http"

	"questserver/internal/domain"
	"questserver/internal/username"
)

// newFormID registers a form with the username gate and returns its signed
// id for embedding in the page.
func (a *app) newFormID() (string, error) {
	id, err := a.forms.issue()
	if err != nil {
		return "", err
	}
	return a.cookieCodec.Sign(id), nil
}

// handleUsernameCheck runs the live username gate for one keystroke. Every
// outcome the page should display is answered with 200 so htmx swaps it into
// the validation target; a suppressed check leaves the target untouched.
func (a *app) handleUsernameCheck(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	formID, ok := a.cookieCodec.Verify(q.Get("form_id"))
	if !ok {
		a.templates.renderFeedback(w, http.StatusOK, username.Feedback{
			Text:  "This form has expired. Reload the page.",
			Class: username.ClassFailure,
		})
		return
	}

	name := q.Get("username")
	d := a.forms.validator(formID).Check(name)
	switch d.Kind {
	case username.Suppress:
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
		return
	case username.Block:
		a.templates.renderFeedback(w, http.StatusOK, d.Feedback)
		return
	}

	a.templates.renderFeedback(w, http.StatusOK, a.availabilityFeedback(r, name))
}

func (a *app) availabilityFeedback(r *http.Request, name string) username.Feedback {
	if a.profileSvc == nil {
		return username.Feedback{Text: "Availability cannot be checked right now", Class: username.ClassFailure}
	}

	avail, err := a.profileSvc.CheckAvailability(r.Context(), name)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.Fields["username"] != "" {
			return username.Feedback{Text: verr.Fields["username"], Class: username.ClassFailure}
		}
		a.logger.Error("userui: availability check", "err", err)
		return username.Feedback{Text: "Availability cannot be checked right now", Class: username.ClassFailure}
	}

	if avail.Available {
		return username.Feedback{Text: "@" + avail.Username + " is available", Class: username.ClassSuccess}
	}
	return username.Feedback{Text: "@" + avail.Username + " is already taken", Class: username.ClassFailure}
}
