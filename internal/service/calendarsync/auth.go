package calendarsync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/domain"
	"github.com/credtrack/cpd-backend/pkg/ctxutil"
)

// oauthState round-trips through the provider's consent flow so the callback
// knows which user and plan the authorization belongs to.
type oauthState struct {
	UserID uuid.UUID `json:"user_id"`
	PlanID uuid.UUID `json:"planned_training_id"`
}

func encodeState(st oauthState) (string, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeState(s string) (oauthState, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return oauthState{}, domain.NewValidationError("state", "malformed")
	}
	var st oauthState
	if err := json.Unmarshal(raw, &st); err != nil {
		return oauthState{}, domain.NewValidationError("state", "malformed")
	}
	if st.UserID == uuid.Nil || st.PlanID == uuid.Nil {
		return oauthState{}, domain.NewValidationError("state", "incomplete")
	}
	return st, nil
}

// AuthorizationURL builds the provider consent URL for syncing the given
// plan. The plan is loaded first so a caller cannot start a flow for a plan
// they do not own.
func (s *Service) AuthorizationURL(ctx context.Context, planID uuid.UUID) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	if _, err := s.plans.GetByID(ctx, userID, planID); err != nil {
		return "", fmt.Errorf("get planned training: %w", err)
	}

	state, err := encodeState(oauthState{UserID: userID, PlanID: planID})
	if err != nil {
		return "", err
	}

	return s.calendar.AuthorizationURL(state), nil
}

// CallbackResult reports what a completed consent flow achieved.
type CallbackResult struct {
	PlanID        uuid.UUID
	EventsCreated int
}

// HandleCallback finishes the consent flow: it exchanges the authorization
// code, upserts the credential for the state's user, and immediately syncs
// the plan the flow was started for. The sync half is best effort; the
// stored credential is the durable outcome, and the user can retry the sync
// from the plan itself.
func (s *Service) HandleCallback(ctx context.Context, code, state string) (*CallbackResult, error) {
	st, err := decodeState(state)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, domain.NewValidationError("code", "required")
	}

	cred, err := s.calendar.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	cred.UserID = st.UserID

	if err := s.creds.Upsert(ctx, cred); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	s.log.InfoContext(ctx, "calendar credential stored", "user_id", st.UserID)

	created, err := s.syncForUser(ctx, st.UserID, st.PlanID)
	if err != nil {
		s.log.ErrorContext(ctx, "post-authorization sync failed",
			"plan_id", st.PlanID,
			"error", err.Error(),
		)
	}

	return &CallbackResult{PlanID: st.PlanID, EventsCreated: created}, nil
}
