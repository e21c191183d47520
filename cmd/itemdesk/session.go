package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/itemdesk/app/web"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/pkg/jwt"
)

func newSessionCmd(load func(context.Context) (*web.App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the stored session",
	}
	cmd.AddCommand(newSessionShowCmd(load), newSessionClearCmd(load))
	return cmd
}

// sessionView is the printable form of a session. Tokens are masked.
type sessionView struct {
	Authenticated bool          `json:"authenticated"`
	User          *session.User `json:"user,omitempty"`
	AccessToken   string        `json:"access_token,omitempty"`
	RefreshToken  string        `json:"refresh_token,omitempty"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	Expired       bool          `json:"expired,omitempty"`
	PersistError  string        `json:"persist_error,omitempty"`
}

func newSessionView(s session.Session, persistErr error) sessionView {
	v := sessionView{
		Authenticated: s.IsAuthenticated,
		User:          s.User,
		AccessToken:   mask(s.Token()),
	}
	if s.RefreshToken != nil {
		v.RefreshToken = mask(*s.RefreshToken)
	}
	if claims, err := jwt.Inspect(s.Token()); err == nil && claims.HasExpiry() {
		exp := claims.ExpiresAt.UTC()
		v.ExpiresAt = &exp
		v.Expired = claims.Expired(time.Now())
	}
	if persistErr != nil {
		v.PersistError = persistErr.Error()
	}
	return v
}

// mask keeps a short prefix so tokens can be told apart without leaking them.
func mask(token string) string {
	const keep = 6
	switch {
	case token == "":
		return ""
	case len(token) <= keep*2:
		return "***"
	default:
		return token[:keep] + "***"
	}
}

func newSessionShowCmd(load func(context.Context) (*web.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored session with tokens masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			store := app.Store()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(newSessionView(store.Session(), store.LastPersistError()))
		},
	}
}

func newSessionClearCmd(load func(context.Context) (*web.App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Sign out locally by resetting the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store().ClearAuth(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("session cleared")
			return nil
		},
	}
}
