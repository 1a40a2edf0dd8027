package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/apierror"
	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/infra"
)

// AuthService holds the session credentials and exposes them to the API layer
// as a TokenSource. Credentials persist across runs through the
// CredentialStore; a failed refresh is fatal to the session.
type AuthService struct {
	api   *api.Client
	store infra.CredentialStore

	// onExpired fires after a forced logout caused by a failed refresh —
	// the redirect-to-login analogue. May be nil.
	onExpired func()

	mu    sync.RWMutex
	creds *infra.Credentials
}

func NewAuthService(store infra.CredentialStore, onExpired func()) *AuthService {
	s := &AuthService{store: store, onExpired: onExpired}
	creds, err := store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("auth: stored credentials unreadable, starting logged out")
		return s
	}
	s.creds = creds
	return s
}

// Bind hands the service its API client. Split from the constructor because
// the api.Client itself needs this service as its TokenSource.
func (s *AuthService) Bind(client *api.Client) { s.api = client }

// AccessToken implements api.TokenSource. Read under lock so each outgoing
// request captures a consistent value; callers never re-read mid-request.
func (s *AuthService) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Access
}

// Current returns a copy of the held credentials, or nil when logged out.
func (s *AuthService) Current() *infra.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil
	}
	c := *s.creds
	return &c
}

// Login authenticates and persists the issued token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		fields := map[string]string{}
		if username == "" {
			fields["username"] = "required"
		}
		if password == "" {
			fields["password"] = "required"
		}
		return apierror.NewValidation(fields)
	}

	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	creds := &infra.Credentials{Access: pair.Access, Refresh: pair.Refresh}
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	if err := s.store.Save(creds); err != nil {
		log.Warn().Err(err).Msg("auth: could not persist credentials")
	}
	log.Info().Str("username", username).Msg("auth: session started")
	return nil
}

// Logout clears the in-memory and persisted credentials.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("auth: could not clear stored credentials")
	}
	log.Info().Msg("auth: session ended")
}

// Refresh rotates the access credential. Any failure — no refresh token held,
// expired refresh, backend rejection — forces a logout and fires the
// session-expired hook: refresh failure is not locally recoverable.
func (s *AuthService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	var refresh string
	if s.creds != nil {
		refresh = s.creds.Refresh
	}
	s.mu.RUnlock()

	if refresh == "" {
		s.expire()
		return &apierror.AuthError{Detail: "no hay refresh token disponible"}
	}

	access, err := s.api.RefreshToken(ctx, refresh)
	if err != nil {
		log.Warn().Err(err).Msg("auth: refresh failed, forcing logout")
		s.expire()
		return &apierror.AuthError{Detail: "refresh token invalido o expirado"}
	}

	s.mu.Lock()
	creds := &infra.Credentials{Access: access, Refresh: refresh}
	s.creds = creds
	s.mu.Unlock()

	if err := s.store.Save(creds); err != nil {
		log.Warn().Err(err).Msg("auth: could not persist refreshed credentials")
	}
	return nil
}

// EnsureFresh refreshes proactively when the access token is within a minute
// of its exp claim. The claim is read without signature verification — the
// client holds no signing key and only needs the timestamp.
func (s *AuthService) EnsureFresh(ctx context.Context) error {
	tok := s.AccessToken()
	if tok == "" {
		return &apierror.AuthError{Detail: "sesion no iniciada"}
	}
	if !expiringSoon(tok, time.Now()) {
		return nil
	}
	return s.Refresh(ctx)
}

// UserData returns the authenticated user's profile.
func (s *AuthService) UserData(ctx context.Context) (*dto.UserResponse, error) {
	return s.api.UserData(ctx)
}

func (s *AuthService) expire() {
	s.Logout()
	if s.onExpired != nil {
		s.onExpired()
	}
}

func expiringSoon(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true // unreadable token, let the refresh path sort it out
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Add(time.Minute).After(exp.Time)
}
