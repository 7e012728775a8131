package googlecal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

func newTestClient() *Client {
	cfg := config.CalendarConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURI:  "https://app.credtrack.example/calendar/callback",
		EventStartTime:     "09:00",
		EventDuration:      time.Hour,
		EventTimezone:      "Asia/Tokyo",
		ReminderOffsets:    []time.Duration{24 * time.Hour},
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMapAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		mapped bool
	}{
		{"googleapi 401", &googleapi.Error{Code: 401}, true},
		{"googleapi 403", &googleapi.Error{Code: 403}, true},
		{"wrapped googleapi 401", fmt.Errorf("insert event: %w", &googleapi.Error{Code: 401}), true},
		{"token endpoint rejection", &oauth2.RetrieveError{}, true},
		{"googleapi 404 passes through", &googleapi.Error{Code: 404}, false},
		{"googleapi 500 passes through", &googleapi.Error{Code: 500}, false},
		{"plain error passes through", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAuthError(tt.err)
			if mapped := errors.Is(got, domain.ErrAuthorizationRequired); mapped != tt.mapped {
				t.Errorf("mapAuthError(%v) mapped = %v, want %v", tt.err, mapped, tt.mapped)
			}
			if !tt.mapped && !errors.Is(got, tt.err) {
				t.Errorf("unmapped error was rewritten: got %v, want %v", got, tt.err)
			}
		})
	}
}

func TestClient_ExchangeCode_InvalidGrant(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Bad Request"}`))
	}))
	defer srv.Close()

	c := newTestClient()
	c.oauth.Endpoint = oauth2.Endpoint{TokenURL: srv.URL + "/token"}

	_, err := c.ExchangeCode(context.Background(), "expired-code")
	if !errors.Is(err, domain.ErrAuthorizationRequired) {
		t.Fatalf("expected ErrAuthorizationRequired for invalid_grant, got %v", err)
	}
}

func TestClient_AuthorizationURL(t *testing.T) {
	t.Parallel()

	raw := newTestClient().AuthorizationURL("opaque-state")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unparseable URL: %v", err)
	}

	q := u.Query()
	if got := q.Get("state"); got != "opaque-state" {
		t.Errorf("state = %q", got)
	}
	if got := q.Get("access_type"); got != "offline" {
		t.Errorf("access_type = %q, want offline", got)
	}
	if got := q.Get("prompt"); got != "consent" {
		t.Errorf("prompt = %q, want consent", got)
	}
	if got := q.Get("client_id"); got != "client-id" {
		t.Errorf("client_id = %q", got)
	}
}

func TestClient_EventWindow(t *testing.T) {
	t.Parallel()

	c := newTestClient()

	start, end, err := c.eventWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	if want := time.Date(2026, 9, 1, 9, 0, 0, 0, loc); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := start.Add(time.Hour); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestClient_EventWindow_BadConfig(t *testing.T) {
	t.Parallel()

	c := newTestClient()
	c.timezone = "Not/AZone"
	if _, _, err := c.eventWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("expected error for unknown timezone")
	}

	c = newTestClient()
	c.startTime = "morning"
	if _, _, err := c.eventWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("expected error for malformed start time")
	}
}
