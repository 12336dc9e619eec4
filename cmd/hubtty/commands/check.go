package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hubtty/hubtty/internal/config"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file",
	Long: `Locate, parse, and validate the configuration file, then print
what a full run would use: the selected server, the palette and keymap,
and the counts of comment link rules, dashboards, and review shortcuts.

Credential resolution is skipped: check never prompts for a token and
never touches the credential cache.`,
	RunE: runCheck,
}

func runCheck(c *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(resolveOptions())
	if err != nil {
		return err
	}
	attachServerLog(cfg)

	out := c.OutOrStdout()
	green := color.New(color.FgGreen)
	green.Fprintf(out, "✓ %s is valid\n", cfg.Path)

	fmt.Fprintf(out, "  server:        %s (%s as %s)\n",
		cfg.Server.Name, cfg.Server.URL, cfg.Server.Username)
	fmt.Fprintf(out, "  palette:       %s (%d defined)\n", cfg.Palette.Name, len(cfg.Palettes))
	fmt.Fprintf(out, "  keymap:        %s (%d defined)\n", cfg.Keymap.Name, len(cfg.Keymaps))
	fmt.Fprintf(out, "  commentlinks:  %d rules\n", len(cfg.CommentLinks))
	fmt.Fprintf(out, "  dashboards:    %d\n", cfg.Dashboards.Len())
	fmt.Fprintf(out, "  reviewkeys:    %d\n", cfg.ReviewKeys.Len())
	return nil
}
