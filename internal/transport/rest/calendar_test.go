package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/internal/service/calendarsync"
)

type calendarServiceMock struct {
	AuthorizationURLFunc func(ctx context.Context, planID uuid.UUID) (string, error)
	HandleCallbackFunc   func(ctx context.Context, code, state string) (*calendarsync.CallbackResult, error)
	SyncFunc             func(ctx context.Context, planID uuid.UUID) (int, error)
	DisconnectFunc       func(ctx context.Context) error
}

func (m *calendarServiceMock) AuthorizationURL(ctx context.Context, planID uuid.UUID) (string, error) {
	return m.AuthorizationURLFunc(ctx, planID)
}

func (m *calendarServiceMock) HandleCallback(ctx context.Context, code, state string) (*calendarsync.CallbackResult, error) {
	return m.HandleCallbackFunc(ctx, code, state)
}

func (m *calendarServiceMock) Sync(ctx context.Context, planID uuid.UUID) (int, error) {
	return m.SyncFunc(ctx, planID)
}

func (m *calendarServiceMock) Disconnect(ctx context.Context) error {
	return m.DisconnectFunc(ctx)
}

func TestCalendarHandler_Sync(t *testing.T) {
	t.Parallel()

	planID := uuid.New()
	svc := &calendarServiceMock{
		SyncFunc: func(_ context.Context, id uuid.UUID) (int, error) {
			if id != planID {
				t.Errorf("plan id: got %v, want %v", id, planID)
			}
			return 3, nil
		},
	}
	h := NewCalendarHandler(svc, testLogger())

	body := `{"planId":"` + planID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/calendar/sync", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["eventsCreated"] != 3 {
		t.Errorf("eventsCreated: got %d, want 3", resp["eventsCreated"])
	}
}

func TestCalendarHandler_Sync_AuthorizationRequired(t *testing.T) {
	t.Parallel()

	svc := &calendarServiceMock{
		SyncFunc: func(_ context.Context, _ uuid.UUID) (int, error) {
			return 0, domain.ErrAuthorizationRequired
		},
	}
	h := NewCalendarHandler(svc, testLogger())

	body := `{"planId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/calendar/sync", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if needs, _ := resp["needs_authorization"].(bool); !needs {
		t.Error("expected needs_authorization: true")
	}
}

func TestCalendarHandler_AuthURL_MissingPlanID(t *testing.T) {
	t.Parallel()

	h := NewCalendarHandler(&calendarServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/calendar/auth-url", nil)
	rec := httptest.NewRecorder()

	h.AuthURL(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestCalendarHandler_Callback(t *testing.T) {
	t.Parallel()

	planID := uuid.New()
	svc := &calendarServiceMock{
		HandleCallbackFunc: func(_ context.Context, code, state string) (*calendarsync.CallbackResult, error) {
			if code != "auth-code" || state != "opaque-state" {
				t.Errorf("unexpected args: code=%q state=%q", code, state)
			}
			return &calendarsync.CallbackResult{PlanID: planID, EventsCreated: 2}, nil
		},
	}
	h := NewCalendarHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/calendar/callback?code=auth-code&state=opaque-state", nil)
	rec := httptest.NewRecorder()

	h.Callback(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCalendarHandler_Disconnect(t *testing.T) {
	t.Parallel()

	var called bool
	svc := &calendarServiceMock{
		DisconnectFunc: func(_ context.Context) error {
			called = true
			return nil
		},
	}
	h := NewCalendarHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/calendar/connection", nil)
	rec := httptest.NewRecorder()

	h.Disconnect(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !called {
		t.Error("expected service Disconnect to be called")
	}
}

func TestCalendarHandler_Disconnect_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := &calendarServiceMock{
		DisconnectFunc: func(_ context.Context) error {
			return domain.ErrUnauthorized
		},
	}
	h := NewCalendarHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/calendar/connection", nil)
	rec := httptest.NewRecorder()

	h.Disconnect(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
