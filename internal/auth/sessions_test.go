package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCookieCodec_SignAndVerify(t *testing.T) {
	codec := NewCookieCodec([]byte(strings.Repeat("x", 32)))

	signed := codec.Sign("abc")
	if signed == "abc" {
		t.Fatalf("expected signed value")
	}

	id, ok := codec.Verify(signed)
	if !ok || id != "abc" {
		t.Fatalf("expected verify ok for signed value")
	}

	if _, ok := codec.Verify(signed + "x"); ok {
		t.Fatalf("expected tampered value to fail verification")
	}
	if _, ok := NewCookieCodec([]byte(strings.Repeat("y", 32))).Verify(signed); ok {
		t.Fatalf("expected value signed with another secret to fail")
	}
}

func TestCookieCodec_Unsigned(t *testing.T) {
	codec := NewCookieCodec(nil)
	id, ok := codec.Verify("abc")
	if !ok || id != "abc" {
		t.Fatalf("expected unsigned value to verify")
	}
	if _, ok := codec.Verify(""); ok {
		t.Fatalf("expected empty value to fail")
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	b, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if len(a) != 32 || a == b {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
	for _, r := range a {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token %q contains %q", a, r)
		}
	}
}

func TestSessionCookieHelpers(t *testing.T) {
	rr := httptest.NewRecorder()
	SetSessionCookie(rr, "v", 10*time.Minute, false)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Name != SessionCookieName {
		t.Fatalf("unexpected cookie name: %s", cookies[0].Name)
	}
	if cookies[0].HttpOnly != true || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes")
	}

	rr = httptest.NewRecorder()
	ClearSessionCookie(rr, false)
	cookies = rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("expected MaxAge=-1 on clear")
	}
}
