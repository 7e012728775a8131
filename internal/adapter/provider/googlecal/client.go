// Package googlecal creates deadline events in the user's Google Calendar.
//
// Authorization is the standard three-legged OAuth flow with offline access;
// the stored refresh token lets later scheduler-driven syncs mint access
// tokens without the user present. Any credential failure surfaces as
// domain.ErrAuthorizationRequired so callers can prompt for re-authorization
// instead of retrying.
package googlecal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/domain"
)

// Client wraps the Google Calendar v3 API.
type Client struct {
	oauth     *oauth2.Config
	startTime string
	duration  time.Duration
	timezone  string
	offsets   []time.Duration
	log       *slog.Logger
}

// NewClient creates a calendar client from configuration.
func NewClient(cfg config.CalendarConfig, logger *slog.Logger) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		},
		startTime: cfg.EventStartTime,
		duration:  cfg.EventDuration,
		timezone:  cfg.EventTimezone,
		offsets:   cfg.ReminderOffsets,
		log:       logger.With("adapter", "googlecal"),
	}
}

// AuthorizationURL returns the Google consent-screen URL carrying the given
// state. Offline access and forced consent guarantee a refresh token even for
// users who authorized before.
func (c *Client) AuthorizationURL(state string) string {
	return c.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades an authorization code for tokens. The returned
// credential has no user attached; the caller binds it.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.CalendarCredential, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		c.log.ErrorContext(ctx, "code exchange failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("googlecal: exchange code: %w", mapAuthError(err))
	}

	cred := &domain.CalendarCredential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		cred.ExpiresAt = &expiry
	}
	return cred, nil
}

// CreateEvent inserts one event into the user's primary calendar, refreshing
// the access token if needed. date is the deadline's calendar date (UTC
// midnight); the event is anchored at the configured start time in the
// configured timezone. Returns domain.ErrAuthorizationRequired when the
// credential is revoked or otherwise unusable.
func (c *Client) CreateEvent(ctx context.Context, cred *domain.CalendarCredential, title, description string, date time.Time) error {
	svc, err := c.service(ctx, cred)
	if err != nil {
		return err
	}

	start, end, err := c.eventWindow(date)
	if err != nil {
		return err
	}

	overrides := make([]*calendar.EventReminder, 0, len(c.offsets))
	for _, off := range c.offsets {
		overrides = append(overrides, &calendar.EventReminder{
			Method:  "popup",
			Minutes: int64(off.Minutes()),
		})
	}

	event := &calendar.Event{
		Summary:     title,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: c.timezone},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: c.timezone},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		c.log.ErrorContext(ctx, "event insert failed",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("googlecal: insert event: %w", mapAuthError(err))
	}

	c.log.DebugContext(ctx, "event created",
		slog.String("title", title),
		slog.String("event_id", created.Id),
	)
	return nil
}

func (c *Client) service(ctx context.Context, cred *domain.CalendarCredential) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
	}
	if cred.ExpiresAt != nil {
		token.Expiry = *cred.ExpiresAt
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(c.oauth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("googlecal: create service: %w", err)
	}
	return svc, nil
}

// eventWindow anchors a calendar date at the configured time-of-day in the
// configured timezone.
func (c *Client) eventWindow(date time.Time) (start, end time.Time, err error) {
	loc, err := time.LoadLocation(c.timezone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("googlecal: load timezone %q: %w", c.timezone, err)
	}

	var hour, minute int
	if _, err := fmt.Sscanf(c.startTime, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("googlecal: parse start time %q: %w", c.startTime, err)
	}

	start = time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
	return start, start.Add(c.duration), nil
}

// mapAuthError folds credential failures into the domain sentinel. A 401 or
// 403 from the Calendar API and an invalid_grant from the token endpoint all
// mean the stored tokens are no longer usable.
func mapAuthError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == 401 || gerr.Code == 403) {
		return domain.ErrAuthorizationRequired
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return domain.ErrAuthorizationRequired
	}

	return err
}
