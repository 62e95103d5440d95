package store

import (
	"context"

	"hirestack/recruit-core/internal/models"
)

// SessionSlice holds the bearer credential and current user identity. It
// is the leaf dependency for every authenticated request.
type SessionSlice struct {
	opState
	gw AuthGateway

	user  *models.User
	token string
}

// SessionState is a read-only snapshot of the session slice.
type SessionState struct {
	User      *models.User
	Token     string
	IsLoading bool
	Error     string
}

// IsAuthenticated is derived from credential presence. It is a pure
// function of Token, never tracked as separate state, so the two can't
// diverge.
func (s SessionState) IsAuthenticated() bool { return s.Token != "" }

// SessionSnapshot is the plain-data form persisted by the hydration
// wrapper. In-flight markers never survive a persist/restore cycle.
type SessionSnapshot struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// State returns a copy of the current session state.
func (s *SessionSlice) State() SessionState {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	st := SessionState{Token: s.token, IsLoading: s.isLoading, Error: s.errMsg}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Token returns the current bearer credential, or "" when signed out.
// Suitable as the gateway's token source.
func (s *SessionSlice) Token() string {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.token
}

// SignUp registers a new account. On success the credential and identity
// are stored and the snapshot is persisted; on failure the session stays
// unauthenticated and the rejection carries a user-displayable message.
func (s *SessionSlice) SignUp(ctx context.Context, name, email, password string) (models.User, error) {
	s.begin()
	user, token, err := s.gw.SignUp(ctx, name, email, password)
	if err != nil {
		return models.User{}, s.fail(err)
	}
	return s.commitSignIn(user, token), nil
}

// SignIn authenticates an existing account. The remote response may omit
// the display name; an empty name is a valid identity.
func (s *SessionSlice) SignIn(ctx context.Context, email, password string) (models.User, error) {
	s.begin()
	user, token, err := s.gw.SignIn(ctx, email, password)
	if err != nil {
		return models.User{}, s.fail(err)
	}
	return s.commitSignIn(user, token), nil
}

func (s *SessionSlice) commitSignIn(user models.User, token string) models.User {
	s.store.mu.Lock()
	s.isLoading = false
	u := user
	s.user = &u
	s.token = token
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceSession, snap)
	return user
}

// SignOut always succeeds locally: credential and identity are cleared
// and the persisted snapshot is overwritten regardless of any remote
// session state.
func (s *SessionSlice) SignOut() {
	s.store.mu.Lock()
	s.user = nil
	s.token = ""
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceSession, snap)
}

func (s *SessionSlice) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Restore applies a persisted snapshot. Used only by the hydration
// wrapper before the store is handed to consumers.
func (s *SessionSlice) Restore(snap SessionSnapshot) {
	s.store.mu.Lock()
	s.user = snap.User
	s.token = snap.Token
	s.store.mu.Unlock()
}
