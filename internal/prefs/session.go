package prefs

import (
	"context"

	"github.com/covered-news/covered/pkg/auth"
)

// Session wraps the CoveredPrefs partition plus the identity provider into the
// single object screens ask about login state.
type Session struct {
	store    *Store
	provider *auth.Client
}

func NewSession(store *Store, provider *auth.Client) *Session {
	return &Session{store: store, provider: provider}
}

func (s *Session) LoggedIn() bool {
	return s.store.Bool(PartitionCovered, KeyUserLoggedIn)
}

func (s *Session) SkippedLogin() bool {
	return s.store.Bool(PartitionCovered, KeySkippedLogin)
}

// HasProviderSession reports whether a provider session survives from an
// earlier run.
func (s *Session) HasProviderSession() bool {
	return s.store.String(PartitionCovered, KeyRefreshToken) != ""
}

// ShouldShowLogin checks the three gates in order: skipped-login flag,
// logged-in flag, provider session.
func (s *Session) ShouldShowLogin() bool {
	return !s.SkippedLogin() && !s.LoggedIn() && !s.HasProviderSession()
}

// SaveUser persists the signed-in user and marks the session as logged in.
func (s *Session) SaveUser(user *auth.User, method string) error {
	if err := s.store.SetBool(PartitionCovered, KeyUserLoggedIn, true); err != nil {
		return err
	}
	name := user.DisplayName
	if name == "" {
		name = "Usuario"
	}
	return s.store.SetStrings(PartitionCovered, map[string]string{
		KeyUserName:     name,
		KeyUserEmail:    user.Email,
		KeyUserPhotoURL: user.PhotoURL,
		KeyLoginMethod:  method,
		KeyRefreshToken: user.RefreshToken,
	})
}

// SkipLogin records the guest-mode choice.
func (s *Session) SkipLogin() error {
	return s.store.SetBool(PartitionCovered, KeySkippedLogin, true)
}

// UserName is the display name for the drawer header, "Invitado" when nobody
// is signed in.
func (s *Session) UserName() string {
	if name := s.store.String(PartitionCovered, KeyUserName); name != "" {
		return name
	}
	return "Invitado"
}

func (s *Session) UserEmail() string {
	return s.store.String(PartitionCovered, KeyUserEmail)
}

// SignOutLocal clears every key in the CoveredPrefs partition and returns the
// refresh token that was stored, so the caller can end the provider session
// on its own schedule.
func (s *Session) SignOutLocal() (string, error) {
	token := s.store.String(PartitionCovered, KeyRefreshToken)
	if err := s.store.Clear(PartitionCovered); err != nil {
		return "", err
	}
	return token, nil
}

// SignOut clears local state and ends the provider session in one blocking
// call. The provider call is best-effort: local state is gone either way.
func (s *Session) SignOut(ctx context.Context) error {
	token, err := s.SignOutLocal()
	if err != nil {
		return err
	}
	if s.provider != nil && token != "" {
		return s.provider.SignOut(ctx, token)
	}
	return nil
}
