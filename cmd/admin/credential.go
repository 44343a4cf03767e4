package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ayush/employee-admin/internal/apperr"
	"github.com/ayush/employee-admin/internal/config"
	"github.com/ayush/employee-admin/internal/store"
)

// readPassword is replaced in tests to keep the terminal out of the way.
var readPassword = term.ReadPassword

// opener connects to the configured credential backend.
type opener func(ctx context.Context, cfg *config.Config) (store.CredentialBackend, func(), error)

func openCredentials(ctx context.Context, cfg *config.Config) (store.CredentialBackend, func(), error) {
	if cfg.CredentialBackend != "mongo" {
		return store.OpenCredentials(ctx, cfg.CredentialBackend, nil, cfg.PostgresDSN)
	}
	client, err := store.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	creds, closeCreds, err := store.OpenCredentials(ctx, "mongo", client.Database(cfg.MongoDB), "")
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, err
	}
	return creds, func() {
		closeCreds()
		client.Disconnect(context.Background())
	}, nil
}

func newCredentialCmd(cfg *config.Config, open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage login credentials",
	}
	cmd.AddCommand(newSetCmd(cfg, open), newCheckCmd(cfg, open))
	return cmd
}

func newSetCmd(cfg *config.Config, open opener) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create a credential or change its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("password") {
				pw, err := promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = pw
			}

			creds, closeCreds, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeCreds()
			return setCredential(cmd.Context(), creds, cmd.OutOrStdout(), username, password)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newCheckCmd(cfg *config.Config, open opener) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether a credential exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, closeCreds, err := open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeCreds()
			return checkCredential(cmd.Context(), creds, cmd.OutOrStdout(), username)
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func setCredential(ctx context.Context, creds store.CredentialBackend, w io.Writer, username, password string) error {
	if err := store.SetPassword(ctx, creds, username, password); err != nil {
		return err
	}
	fmt.Fprintf(w, "credential %q saved\n", strings.TrimSpace(username))
	return nil
}

func checkCredential(ctx context.Context, creds store.CredentialBackend, w io.Writer, username string) error {
	c, err := creds.FindByUsername(ctx, username)
	if apperr.KindOf(err) == apperr.NotFound {
		return fmt.Errorf("credential %q does not exist", username)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "credential %q exists (created %s)\n", c.Username, c.CreatedAt.Format("2006-01-02"))
	return nil
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(w, "Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
