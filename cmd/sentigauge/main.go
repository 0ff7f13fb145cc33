// sentigauge — Sentiment KPI gauge generator
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvello/sentigauge/api"
	"github.com/mvello/sentigauge/internal/config"
	"github.com/mvello/sentigauge/internal/gauge"
	"github.com/mvello/sentigauge/internal/report"
	"github.com/mvello/sentigauge/pkg/models"
	"github.com/mvello/sentigauge/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sentigauge",
	Short: "sentigauge — KPI gauge charts from sentiment tallies",
	Long: `sentigauge turns positive/negative/neutral sentiment tallies into a
gauge-style KPI visual: percentage vs target, tier color, threshold
marker, and an optional breakdown annotation. Output as console
summary, SVG, standalone HTML page, or a served web view.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sentigauge %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Build the gauge and print a console summary",
	Long: `Build the gauge chart specification from the configured counts and
print a console summary. Counts and gauge parameters can be overridden
with flags; artifacts (HTML page, raw SVG, JSON spec) are written when
the corresponding output path is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := cfg.Data.Counts()
		if cmd.Flags().Changed("positive") {
			counts.Positive, _ = cmd.Flags().GetInt("positive")
		}
		if cmd.Flags().Changed("negative") {
			counts.Negative, _ = cmd.Flags().GetInt("negative")
		}
		if cmd.Flags().Changed("neutral") {
			counts.Neutral, _ = cmd.Flags().GetInt("neutral")
		}

		opts := gauge.Options{
			Target:        cfg.Gauge.Target,
			Title:         cfg.Gauge.Title,
			ShowBreakdown: cfg.Gauge.ShowBreakdown,
			Colors:        cfg.Gauge.Colors.Scheme(),
		}
		if cmd.Flags().Changed("target") {
			opts.Target, _ = cmd.Flags().GetFloat64("target")
		}
		if cmd.Flags().Changed("title") {
			opts.Title, _ = cmd.Flags().GetString("title")
		}
		if noBreakdown, _ := cmd.Flags().GetBool("no-breakdown"); noBreakdown {
			opts.ShowBreakdown = false
		}

		spec, err := gauge.Build(counts, opts)
		if err != nil {
			return err
		}

		fmt.Print(report.GenerateText(spec))

		if err := writeArtifacts(cmd, spec); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().Int("positive", 0, "positive sentiment count (overrides config)")
	renderCmd.Flags().Int("negative", 0, "negative sentiment count (overrides config)")
	renderCmd.Flags().Int("neutral", 0, "neutral sentiment count (overrides config)")
	renderCmd.Flags().Float64("target", 0, "target positive percentage (overrides config)")
	renderCmd.Flags().String("title", "", "gauge title (overrides config)")
	renderCmd.Flags().Bool("no-breakdown", false, "omit the breakdown annotation")
	renderCmd.Flags().String("html", "", "write standalone HTML page to this path")
	renderCmd.Flags().String("svg", "", "write raw SVG to this path")
	renderCmd.Flags().String("json", "", "write JSON chart spec to this path")
}

// writeArtifacts writes the requested artifacts concurrently. Flag
// values take precedence over the config output section.
func writeArtifacts(cmd *cobra.Command, spec *models.ChartSpec) error {
	htmlPath, _ := cmd.Flags().GetString("html")
	if htmlPath == "" {
		htmlPath = cfg.Output.HTML
	}
	svgPath, _ := cmd.Flags().GetString("svg")
	if svgPath == "" {
		svgPath = cfg.Output.SVG
	}
	jsonPath, _ := cmd.Flags().GetString("json")
	if jsonPath == "" {
		jsonPath = cfg.Output.JSON
	}

	svgCfg := report.DefaultSVGConfig()

	var g errgroup.Group
	if htmlPath != "" {
		g.Go(func() error { return report.WriteHTML(spec, svgCfg, htmlPath) })
	}
	if svgPath != "" {
		g.Go(func() error { return report.WriteSVG(spec, svgCfg, svgPath) })
	}
	if jsonPath != "" {
		g.Go(func() error { return report.SaveSpec(spec, jsonPath) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range []string{htmlPath, svgPath, jsonPath} {
		if p != "" {
			fmt.Printf("💾 Wrote %s\n", p)
		}
	}
	return nil
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gauge as a web page with a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("🌐 Serving gauge on http://%s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured inputs and the resulting tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		counts := cfg.Data.Counts()

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  sentigauge — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:  %s (%s)\n", version, commit)
		fmt.Println()
		fmt.Println("  Configuration:")
		fmt.Printf("    Counts:  +%d / -%d / =%d (total %d)\n",
			counts.Positive, counts.Negative, counts.Neutral, counts.Total())
		fmt.Printf("    Target:  %s\n", utils.FormatPct(cfg.Gauge.Target))
		fmt.Printf("    Title:   %s\n", cfg.Gauge.Title)
		fmt.Printf("    API:     %s:%d\n", cfg.API.Host, cfg.API.Port)

		pct, err := gauge.Percentages(counts)
		if err != nil {
			fmt.Println("\n  ⚠️  No sentiment data configured (total is zero)")
			fmt.Println("═══════════════════════════════════════")
			return nil
		}

		tier := gauge.ClassifyTier(pct.Positive, cfg.Gauge.Target)
		fmt.Println()
		fmt.Printf("  Current: %s (%s tier)\n", utils.FormatPct(pct.Positive), tier)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
