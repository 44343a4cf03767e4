// Command admin manages login credentials out of band.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ayush/employee-admin/internal/config"
	"github.com/ayush/employee-admin/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, true)

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Administer the employee-admin backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCredentialCmd(cfg, openCredentials))

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("admin")
		os.Exit(1)
	}
}
