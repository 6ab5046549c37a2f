package userui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegisterPageCarriesUsernameGate(t *testing.T) {
	a := newTestApp(t, &stubProfilesStore{t: t})

	rr := httptest.NewRecorder()
	a.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/register", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	body := rr.Body.String()
	for _, want := range []string{
		`id="username-validation-target"`,
		`hx-get="/app/usernames/check"`,
		`name="form_id" value="`,
		`<title>Create account · Quest</title>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("register page missing %q", want)
		}
	}
}

func TestRegisterUnavailableWithoutAuth(t *testing.T) {
	a, err := newApp(Opts{})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	rr := httptest.NewRecorder()
	a.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/register", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	a := newTestApp(t, &stubProfilesStore{t: t})
	h := a.routes()

	for _, path := range []string{"/app/", "/app/profiles", "/app/profiles/choose", "/app/settings"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/app/login" {
			t.Fatalf("%s: unexpected response: %d %s", path, rr.Code, rr.Header().Get("Location"))
		}
	}
}

func TestStaticAssetsServed(t *testing.T) {
	a := newTestApp(t, &stubProfilesStore{t: t})

	rr := httptest.NewRecorder()
	a.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/static/style.css", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), ".failure") {
		t.Fatalf("unexpected response: %d", rr.Code)
	}
}
