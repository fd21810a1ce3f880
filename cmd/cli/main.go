package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"autodash/domain/core"
	"autodash/internal/config"
	"autodash/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autodash-cli",
		Short: "AutoDash CLI for dataset processing and dashboard generation",
	}

	rootCmd.AddCommand(
		newProcessCmd(),
		newDashboardCmd(),
		newInsightsCmd(),
		newStatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProcessCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Upload and process a dataset file",
		Long: `Upload a CSV, XLSX, or JSON file and run the analysis pipeline.

Infers the schema, profiles every column, and stores the derived documents
so dashboards and insights can be generated from the dataset.

Example: autodash-cli process sales.csv --user demo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *container.Container) error {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()

				ds, err := c.Processor.Ingest(ctx, core.UserID(userID), filepath.Base(args[0]), f)
				if err != nil {
					return err
				}

				refreshed, getErr := c.Metadata.GetDataset(ctx, ds.ID)
				if getErr == nil {
					ds = refreshed
				}
				return printJSON(ds)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "cli", "User identifier the dataset belongs to")

	return cmd
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [dataset-id]",
		Short: "Generate a dashboard for a processed dataset",
		Long: `Assemble KPI and chart widgets from the dataset's stored schema and profile.

Example: autodash-cli dashboard 01890a5d-ac96-774b-bcce-b302099a8057`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *container.Container) error {
				d, err := c.Dashboards.Generate(ctx, core.DatasetID(args[0]))
				if err != nil {
					return err
				}
				return printJSON(d)
			})
		},
	}

	return cmd
}

func newInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights [dataset-id]",
		Short: "Generate insights for a processed dataset",
		Long: `Detect trends, anomalies, and data quality findings from the dataset's
stored profile. When COHERE_API_KEY is set the findings are condensed into a
natural language summary.

Example: autodash-cli insights 01890a5d-ac96-774b-bcce-b302099a8057`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *container.Container) error {
				report, err := c.Insights.Generate(ctx, core.DatasetID(args[0]))
				if err != nil {
					return err
				}
				return printJSON(report)
			})
		},
	}

	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [user-id]",
		Short: "Show a user's usage counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd.Context(), func(ctx context.Context, c *container.Container) error {
				stats, err := c.Metadata.GetUserStats(ctx, core.UserID(args[0]))
				if err != nil {
					return err
				}
				return printJSON(stats)
			})
		},
	}

	return cmd
}

func withContainer(ctx context.Context, fn func(context.Context, *container.Container) error) error {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	if err := c.Init(ctx); err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
