package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tg2app/google-skill/internal/authproxy"
	"github.com/tg2app/google-skill/internal/google"
	"github.com/tg2app/google-skill/internal/httpjson"
	"github.com/tg2app/google-skill/internal/logging"
)

// Environment fallbacks for the required persistent flags. A .env file in
// the working directory is loaded first if present.
const (
	envAPIBase = "GOOGLE_SKILL_API_BASE"
	envUserID  = "GOOGLE_SKILL_USER_ID"
)

var (
	apiBase    string
	userIDFlag string
	logLevel   string
	timeout    time.Duration

	logger   *slog.Logger
	registry = authproxy.NewRegistry()
)

// rootCmd represents the base command for the google-skill application
var rootCmd = &cobra.Command{
	Use:   "google-skill",
	Short: "Google Calendar and Gmail actions through an OAuth token proxy",
	Long: `google-skill lets a bot agent act on a user's behalf against Google
Calendar and Gmail. Per-user OAuth tokens are obtained from a token-issuing
proxy; when the user has not authorized a scope yet, the command prints a
consent link and stops so the user can authorize out of band.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env; missing file is fine.
		_ = godotenv.Load()
		if apiBase == "" {
			apiBase = os.Getenv(envAPIBase)
		}
		if userIDFlag == "" {
			userIDFlag = os.Getenv(envUserID)
		}
		logger = logging.Setup(cmd.ErrOrStderr(), logLevel)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "google-skill version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "OAuth proxy base URL (or "+envAPIBase+")")
	rootCmd.PersistentFlags().StringVar(&userIDFlag, "user-id", "", "numeric user ID for OAuth (or "+envUserID+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", httpjson.DefaultTimeout, "timeout for every network call")

	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newGmailCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newBroker validates the persistent identity flags and builds the token
// broker. Called by every command that talks to the proxy.
func newBroker() (*authproxy.Broker, int64, error) {
	if apiBase == "" {
		return nil, 0, fmt.Errorf("--api-base is required (or set %s)", envAPIBase)
	}
	if userIDFlag == "" {
		return nil, 0, fmt.Errorf("--user-id is required (or set %s)", envUserID)
	}
	userID, err := strconv.ParseInt(userIDFlag, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("--user-id must be numeric, got %q", userIDFlag)
	}

	client := httpjson.NewClient(timeout)
	broker := authproxy.NewBroker(client, strings.TrimRight(apiBase, "/"), logger)
	return broker, userID, nil
}

// obtainToken runs the authorization policy for the given scope key. The
// second return value is true when a consent link was rendered and the
// command should stop with a success status.
func obtainToken(cmd *cobra.Command, key authproxy.ScopeKey) (string, bool, error) {
	broker, userID, err := newBroker()
	if err != nil {
		return "", false, err
	}

	authorizer := authproxy.NewAuthorizer(broker, registry, cmd.OutOrStdout(), logger)
	token, err := authorizer.Authorize(cmd.Context(), userID, key)
	if errors.Is(err, authproxy.ErrConsentPending) {
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, false, nil
}

// handleAPIError turns a classified Google API failure into user guidance.
// Unclassified errors pass through unchanged; nil stays nil.
func handleAPIError(cmd *cobra.Command, err error, key authproxy.ScopeKey) error {
	if err == nil {
		return nil
	}

	fail := google.Classify(err)
	if fail == nil {
		return err
	}

	if fail.Stale {
		name := registry.DisplayName(string(key))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Google API error: %s\n", fail.Message)
		fmt.Fprintf(out, "\nThe permission for **%s** may have been revoked or was not granted.\n", name)
		fmt.Fprintln(out, "Please re-authorize by running the same command again.")
		return fmt.Errorf("authorization for %s must be renewed", name)
	}

	return fmt.Errorf("Google API error (HTTP %d): %s", fail.Code, fail.Message)
}
