package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runI18N(t *testing.T, req *http.Request, lookup CountryLookup) (locale, country string) {
	t.Helper()
	handler := I18N("en", lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = LocaleFromContext(r.Context())
		country = CountryFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return locale, country
}

func TestI18NPrefersXLocaleHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Locale", "pt-BR")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")

	locale, _ := runI18N(t, req, nil)
	if locale != "pt" {
		t.Fatalf("locale = %q, want %q", locale, "pt")
	}
}

func TestI18NParsesAcceptLanguage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")

	locale, _ := runI18N(t, req, nil)
	if locale != "es" {
		t.Fatalf("locale = %q, want %q", locale, "es")
	}
}

func TestI18NFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	locale, _ := runI18N(t, req, nil)
	if locale != "en" {
		t.Fatalf("locale = %q, want %q", locale, "en")
	}
}

func TestI18NResolvesCountry(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	_, country := runI18N(t, req, func(ip string) (string, error) {
		if ip != "203.0.113.7" {
			t.Fatalf("lookup ip = %q", ip)
		}
		return "br", nil
	})
	if country != "BR" {
		t.Fatalf("country = %q, want %q", country, "BR")
	}
}

func TestI18NIgnoresLookupFailure(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	_, country := runI18N(t, req, func(string) (string, error) {
		return "", errors.New("geoip database unavailable")
	})
	if country != "" {
		t.Fatalf("country = %q, want empty", country)
	}
}
