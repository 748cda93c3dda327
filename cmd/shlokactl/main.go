// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command shlokactl is the bulk-entry companion to the console API.
//
// It reads YAML verse files, composes them with the same editor rules the
// console applies, and submits them to the content API directly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/shloka-console/internal/platform/constants"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

var (
	// Global flags
	baseURL    string
	identifier string
	password   string
	timeout    time.Duration
	verbose    bool

	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shlokactl",
	Short: "Compose and import verses into the content API",
	Long: `shlokactl turns YAML verse files into content API submissions.

Credentials default to SHLOKA_IDENTIFIER and SHLOKA_PASSWORD; the content API
address defaults to STRAPI_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&baseURL, "base-url", envOr("STRAPI_URL", "http://localhost:1337"), "Content API root URL")
	flags.StringVar(&identifier, "identifier", os.Getenv("SHLOKA_IDENTIFIER"), "Login email or username")
	flags.StringVar(&password, "password", os.Getenv("SHLOKA_PASSWORD"), "Login password")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(composeCmd, importCmd, libraryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// login opens a content API session for the duration of one command.
func login(context context.Context, client *strapi.Client) (*session.Session, error) {
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("identifier and password are required (--identifier/--password or SHLOKA_IDENTIFIER/SHLOKA_PASSWORD)")
	}

	root := strapi.CleanBaseURL(baseURL)
	identity, err := client.Login(context, root, strapi.Credentials{Identifier: identifier, Password: password})
	if err != nil {
		if message := strapi.Message(err); message != "" {
			return nil, fmt.Errorf("login failed: %s", message)
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	logger.Debug("login_succeeded", slog.String("email", identity.User.Email))

	return &session.Session{
		ID:            constants.AppName + "-cli",
		Email:         identity.User.Email,
		UpstreamToken: identity.JWT,
		BaseURL:       root,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
