// Package main implements devtoken, which mints bearer tokens for local use
// against the API. Tokens are signed with JWT_SECRET.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/domain"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		user   domain.AuthUser
		ttl    time.Duration
		secret string
	)
	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a bearer token for local development",
		Long: `devtoken prints a signed JWT for the given user.

Examples:
  # Token for a user with the default one day lifetime
  devtoken --sub user-1 --email alice@example.com --name Alice

  # Use it
  curl -H "Authorization: Bearer $(devtoken --sub user-1 --email a@b.c)" localhost:8080/profile`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return errors.New("--secret or JWT_SECRET is required")
			}
			token, err := auth.NewJWTIssuer(secret).Issue(user, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}
	cmd.Flags().StringVar(&user.ID, "sub", "", "user id (token subject)")
	cmd.Flags().StringVar(&user.Email, "email", "", "user email")
	cmd.Flags().StringVar(&user.Name, "name", "", "user display name")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "signing secret")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
