package feed

import (
	"context"
	"fmt"
	"strings"

	"feedsync/internal/core"
)

type authNotices struct {
	operation    string
	successTitle string
	successBody  string // formatted with the username
	failureTitle string
	failureBody  string
}

var (
	registerNotices = authNotices{
		operation:    "register",
		successTitle: "Registration Successful",
		successBody:  "Welcome, %s!",
		failureTitle: "Registration Failed",
		failureBody:  "Could not create the account",
	}

	loginNotices = authNotices{
		operation:    "login",
		successTitle: "Login Successful",
		successBody:  "Welcome back, %s!",
		failureTitle: "Login Failed",
		failureBody:  "Incorrect username or password",
	}
)

// Restore loads the persisted identity. Only the first call does any work;
// every other operation calls it first, so the session is restored before the
// first feed interaction even if the host never does. The stored identity is
// trusted without asking the service.
func (s *Syncer) Restore(ctx context.Context) error {
	s.restoreOnce.Do(func() {
		s.restoreErr = s.restore(ctx)
	})
	return s.restoreErr
}

func (s *Syncer) restore(ctx context.Context) error {
	user, ok, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		s.logger.Error("failed to restore session", "error", err)
		return fmt.Errorf("restoring session: %w", err)
	}

	if !ok || user == "" {
		s.logger.Debug("no stored session")
		return nil
	}

	s.setCurrentUser(user)
	s.logger.Info("session restored", "user", user)
	return nil
}

func (s *Syncer) Register(ctx context.Context, username, password string) bool {
	s.Restore(ctx) //nolint:errcheck
	err := s.authenticate(ctx, username, password, s.gateway.Register, registerNotices)
	return s.settle(registerNotices.operation, err)
}

func (s *Syncer) Login(ctx context.Context, username, password string) bool {
	s.Restore(ctx) //nolint:errcheck
	err := s.authenticate(ctx, username, password, s.gateway.Login, loginNotices)
	return s.settle(loginNotices.operation, err)
}

// Logout forgets the current user. The in-memory session is cleared even when
// the stored one cannot be erased.
func (s *Syncer) Logout(ctx context.Context) bool {
	s.Restore(ctx) //nolint:errcheck

	s.setCurrentUser("")

	err := s.store.Remove(ctx, sessionKey)
	if err != nil {
		s.logger.Error("failed to erase stored session", "error", err)
	}

	s.navigate(core.NavigationIntent{Screen: core.ScreenLogin, Replace: true})

	return s.settle("logout", err)
}

type authCall func(ctx context.Context, username, password string) (core.Ack, error)

func (s *Syncer) authenticate(ctx context.Context, username, password string, call authCall, n authNotices) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		s.notify(n.failureTitle, "Username and password are required")
		return ErrBlankCredentials
	}

	if err := check(call(ctx, username, password)); err != nil {
		s.notify(n.failureTitle, failureBody(err, n.failureBody))
		return err
	}

	s.setCurrentUser(username)

	// TODO: report a session that could not be persisted once the presentation
	// layer can tell "signed in for this run only" apart from a full login.
	if err := s.store.Set(ctx, sessionKey, username); err != nil {
		s.logger.Warn("failed to persist session", "user", username, "error", err)
	}

	s.notify(n.successTitle, fmt.Sprintf(n.successBody, username))
	s.reload(ctx) //nolint:errcheck
	s.navigate(core.NavigationIntent{Screen: core.ScreenHome, Replace: true})

	return nil
}
