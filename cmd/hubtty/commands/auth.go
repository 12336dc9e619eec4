package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hubtty/hubtty/internal/auth"
	"github.com/hubtty/hubtty/internal/config"
	"github.com/hubtty/hubtty/internal/doctor"
)

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage cached API tokens",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Acquire and cache an API token for the selected server",
	Long: `Ensure a token is cached for the selected server. If the
credential cache already holds one, nothing is asked; otherwise the
token is read from the terminal without echo and written to the cache
with owner-only permissions.`,
	RunE: runAuthLogin,
}

func runAuthLogin(c *cobra.Command, _ []string) error {
	opts := resolveOptions()
	opts.Tokens = &auth.PromptSource{In: os.Stdin, Out: c.ErrOrStderr()}

	cfg, err := config.Resolve(opts)
	if err != nil {
		return err
	}
	attachServerLog(cfg)

	color.New(color.FgGreen).Fprintf(c.OutOrStdout(),
		"✓ token cached for %s (%s)\n", cfg.Server.Name, doctor.MaskValue(cfg.Token))
	return nil
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is cached for the selected server",
	RunE:  runAuthStatus,
}

func runAuthStatus(c *cobra.Command, _ []string) error {
	// An empty-token source turns a cache miss into a reportable state
	// instead of a prompt.
	missed := false
	opts := resolveOptions()
	opts.Tokens = auth.TokenSourceFunc(func(string) (string, error) {
		missed = true
		return "", nil
	})

	cfg, err := config.Resolve(opts)
	if err != nil && !missed {
		return err
	}

	out := c.OutOrStdout()
	if missed || cfg == nil || cfg.Token == "" {
		fmt.Fprintln(out, "no token cached; run 'hubtty auth login'")
		return nil
	}
	fmt.Fprintf(out, "token cached for %s (%s)\n", cfg.Server.Name, doctor.MaskValue(cfg.Token))
	return nil
}
