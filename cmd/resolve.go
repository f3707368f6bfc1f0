package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/user/scengen/pkg/catalog"
	"github.com/user/scengen/pkg/config"
	"github.com/user/scengen/pkg/metrics"
	"github.com/user/scengen/pkg/report"
	"github.com/user/scengen/pkg/resolver"
	"github.com/user/scengen/pkg/scenario"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Select modules for a scenario",
	Example: `  scengen resolve -s scenarios/web_server.yaml -c modules/
  scengen resolve -s web.yaml --seed 42 --snapshot run.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioPath, _ := cmd.Flags().GetString("scenario")
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		plain, _ := cmd.Flags().GetBool("plain")

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, closer, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()
		dir, err := catalogDir(cmd, cfg)
		if err != nil {
			return err
		}

		cat, err := catalog.LoadDirectory(dir)
		if err != nil {
			return err
		}
		scn, err := scenario.Load(scenarioPath)
		if err != nil {
			return err
		}
		log.WithField("modules", cat.Len()).Debugf("Loaded catalog from %s", dir)

		opts := []resolver.Option{
			resolver.WithLogger(log),
			resolver.WithRetryLimit(cfg.RetryLimit),
			resolver.WithRetryDelay(cfg.RetryDelayDuration()),
		}
		if cmd.Flags().Changed("retries") {
			n, _ := cmd.Flags().GetInt("retries")
			opts = append(opts, resolver.WithRetryLimit(n))
		}
		if cmd.Flags().Changed("retry-delay") {
			d, _ := cmd.Flags().GetDuration("retry-delay")
			opts = append(opts, resolver.WithRetryDelay(d))
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts = append(opts, resolver.WithSeed(seed))
		}

		var reg *prometheus.Registry
		if metricsFile != "" {
			reg = prometheus.NewRegistry()
			opts = append(opts, resolver.WithMetrics(metrics.New(reg)))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, resolveErr := resolver.New(opts...).Resolve(ctx, scn, cat)
		if reg != nil {
			if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
				log.WithError(err).Warn("Could not write metrics file")
			}
		}
		if resolveErr != nil {
			return resolveErr
		}

		if violations := resolver.Verify(res.Modules()); len(violations) > 0 {
			for _, v := range violations {
				log.Errorf("Conflict between %s and %s", v.A.Path, v.B.Path)
			}
			return fmt.Errorf("resolution contains %d conflicting pair(s)", len(violations))
		}

		if err := report.Summary(cmd.OutOrStdout(), scn, res, !plain); err != nil {
			return err
		}

		if snapshotPath != "" {
			if err := report.SaveSnapshot(snapshotPath, scn, res); err != nil {
				return fmt.Errorf("failed to save snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nSnapshot saved to %s\n", snapshotPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringP("scenario", "s", "", "Scenario file")
	resolveCmd.Flags().StringP("catalog", "c", "", "Module catalog directory")
	resolveCmd.Flags().Int64("seed", 0, "Seed the module shuffle for a reproducible run")
	resolveCmd.Flags().Int("retries", resolver.DefaultRetryLimit, "Retries after a conflicted attempt")
	resolveCmd.Flags().Duration("retry-delay", resolver.DefaultRetryDelay, "Pause between attempts")
	resolveCmd.Flags().String("snapshot", "", "Write the resolution to this JSON file")
	resolveCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format")
	resolveCmd.Flags().Bool("plain", false, "Disable colours")
	_ = resolveCmd.MarkFlagRequired("scenario")
}
