package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/f1-dashboard-service/internal/dashboard"
	"github.com/preston-bernstein/f1-dashboard-service/internal/server"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newQueryDashboard builds a dashboard for one-shot commands. Telemetry is
// off and logs go to stderr so stdout stays parseable.
func newQueryDashboard(cmd *cobra.Command, opts *rootOptions) *dashboard.Service {
	cfg := opts.loadConfig()
	cfg.Metrics.Enabled = false
	return server.NewDashboard(cfg, newLogger(cfg, cmd.ErrOrStderr()), nil)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func newRaceCmd(opts *rootOptions) *cobra.Command {
	var season, round int
	cmd := &cobra.Command{
		Use:   "race",
		Short: "Print the reconciled race descriptor for a season and round",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newQueryDashboard(cmd, opts)
			return printJSON(cmd.OutOrStdout(), svc.Race(cmd.Context(), season, round))
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "season year (default latest available)")
	cmd.Flags().IntVar(&round, "round", 0, "round number (default first race)")
	return cmd
}

func newVisualCmd() *cobra.Command {
	var code, name, team string
	cmd := &cobra.Command{
		Use:   "visual",
		Short: "Print the visual profile (image, number, color) for a driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(code) == "" && strings.TrimSpace(name) == "" {
				return fmt.Errorf("one of --code or --name is required")
			}
			// Visual lookup only reads the archive; no provider is needed.
			svc := dashboard.NewService(nil, nil, nil, nil, dashboard.Options{})
			return printJSON(cmd.OutOrStdout(), svc.Visual(code, name, team))
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "three-letter driver code")
	cmd.Flags().StringVar(&name, "name", "", "driver name")
	cmd.Flags().StringVar(&team, "team", "", "team name used to pick the livery color")
	return cmd
}

func newStandingsCmd(opts *rootOptions) *cobra.Command {
	var season, round int
	var kind string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print driver, constructor, or team standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newQueryDashboard(cmd, opts)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch strings.ToLower(kind) {
			case "drivers", "":
				return printJSON(out, svc.DriverStandings(ctx, season, round))
			case "constructors":
				return printJSON(out, svc.ConstructorStandings(ctx, season, round))
			case "teams":
				return printJSON(out, svc.TeamStandings(ctx, season, round))
			default:
				return fmt.Errorf("unknown standings kind %q (want drivers, constructors, or teams)", kind)
			}
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "drivers", "drivers, constructors, or teams")
	cmd.Flags().IntVar(&season, "season", 0, "season year (default latest available)")
	cmd.Flags().IntVar(&round, "round", 0, "round number (0 for latest)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the service version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", serviceName, appVersion)
		},
	}
}
