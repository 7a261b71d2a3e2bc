package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tg2app/google-skill/internal/authproxy"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Google authorization",
	}

	cmd.AddCommand(newAuthCheckCmd())
	cmd.AddCommand(newAuthSetupCmd())
	return cmd
}

func newAuthCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Aliases: []string{"status"},
		Short:   "Show per-scope authorization status",
		RunE: func(cmd *cobra.Command, args []string) error {
			broker, userID, err := newBroker()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "## Google Authorization Status")
			fmt.Fprintln(out)

			// One minimal-scope probe per audit group; a consent URL in the
			// reply means the group is not authorized.
			notAuthorized := 0
			for _, group := range registry.Groups() {
				res, err := broker.RequestToken(cmd.Context(), userID, group.Scopes)
				if err != nil {
					return err
				}

				switch res.Kind {
				case authproxy.KindToken:
					fmt.Fprintf(out, "- ✅ **%s** — authorized\n", group.Name)
					fmt.Fprintf(out, "  Actions: %s\n", group.Actions)
				case authproxy.KindConsent:
					notAuthorized++
					fmt.Fprintf(out, "- ❌ **%s** — not authorized\n", group.Name)
					fmt.Fprintf(out, "  Actions: %s\n", group.Actions)
				case authproxy.KindError:
					notAuthorized++
					fmt.Fprintf(out, "- ⚠️ **%s** — error: %s\n", group.Name, res.Message)
				}
				fmt.Fprintln(out)
			}

			if notAuthorized == 0 {
				fmt.Fprintln(out, "All permissions are authorized. You can use all Google features.")
			} else {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "%d permission(s) need authorization.\n", notAuthorized)
				fmt.Fprintln(out, "Use `google-skill auth setup` to authorize all permissions at once.")
			}
			return nil
		},
	}
}

func newAuthSetupCmd() *cobra.Command {
	var scopesFlag string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Request authorization for all scopes (or specific ones)",
		RunE: func(cmd *cobra.Command, args []string) error {
			broker, userID, err := newBroker()
			if err != nil {
				return err
			}

			scopes := registry.AllScopes()
			if scopesFlag != "" {
				scopes, err = resolveScopeFilter(scopesFlag)
				if err != nil {
					return err
				}
			}

			res, err := broker.RequestToken(cmd.Context(), userID, scopes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Kind {
			case authproxy.KindToken:
				fmt.Fprintln(out, "All requested permissions are already authorized.")
			case authproxy.KindConsent:
				fmt.Fprintln(out, "## Google Authorization Setup")
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Please click the link below to authorize your Google account:")
				fmt.Fprintln(out)
				fmt.Fprintln(out, res.AuthURL)
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Permissions being requested:")
				for _, scope := range scopes {
					fmt.Fprintf(out, "  - %s\n", registry.DisplayName(scope))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, "After authorizing, run `google-skill auth check` to verify.")
			case authproxy.KindError:
				return errors.New(res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scopesFlag, "scopes", "", "comma-separated scope names ("+strings.Join(registry.GroupKeys(), ",")+")")
	return cmd
}

// resolveScopeFilter maps a comma-separated list of audit group keys to a
// deduplicated scope list.
func resolveScopeFilter(filter string) ([]string, error) {
	var scopes []string
	seen := make(map[string]bool)
	for _, key := range strings.Split(filter, ",") {
		key = strings.TrimSpace(key)
		group, ok := registry.Group(key)
		if !ok {
			return nil, fmt.Errorf("unknown scope: %s. Available: %s", key, strings.Join(registry.GroupKeys(), ", "))
		}
		for _, s := range group.Scopes {
			if !seen[s] {
				seen[s] = true
				scopes = append(scopes, s)
			}
		}
	}
	return scopes, nil
}
