package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/stockledger/internal/adapter/http/dto"
	"github.com/iho/stockledger/internal/infrastructure/config"
	"github.com/iho/stockledger/internal/infrastructure/postgres"
)

const descriptionWidth = 40

var (
	baseURL    string
	timeout    time.Duration
	jsonOutput bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stockledger-cli",
		Short:         "Stock ledger CLI tool",
		Long:          `A command line interface for the stock ledger API and its database migrations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the stock ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON")

	rootCmd.AddCommand(itemsCmd(), stockCmd(), safetyStockCmd(), shortagesCmd(), reloadCmd(), migrateCmd())

	return rootCmd
}

func itemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []dto.ItemResponse
			if err := newAPIClient().get(cmd.Context(), "/api/v1/items", &items); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), items)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tSAFETY STOCK")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", it.Code, it.Name, it.SafetyStock)
			}
			return tw.Flush()
		},
	}
}

func stockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <code>",
		Short: "Show an item's stock position and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			var stock dto.ItemStockResponse
			if err := client.get(cmd.Context(), itemPath(args[0], ""), &stock); err != nil {
				return err
			}
			var history dto.TransactionHistoryResponse
			if err := client.get(cmd.Context(), itemPath(args[0], "/transactions"), &history); err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"stock": stock, "history": history})
			}

			out := cmd.OutOrStdout()
			s := stock.Snapshot
			fmt.Fprintf(out, "%s %s\n", stock.Item.Code, stock.Item.Name)
			fmt.Fprintf(out, "Current stock:   %d\n", s.CurrentStock)
			fmt.Fprintf(out, "Safety stock:    %d\n", s.SafetyStock)
			fmt.Fprintf(out, "Available stock: %d\n", s.AvailableStock)
			if s.IsShortage {
				fmt.Fprintln(out, "SHORTAGE: available stock is at or below the safety stock")
			}
			if !s.HasHistory {
				fmt.Fprintln(out, "No transactions recorded.")
				return nil
			}

			fmt.Fprintln(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "DATE\tDESCRIPTION\tIN\tOUT\tBALANCE\t")
			for _, row := range history.Transactions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t\n",
					row.Date, truncate(row.Description, descriptionWidth), row.InboundQty, row.OutboundQty, row.RunningBalance)
			}
			return tw.Flush()
		},
	}
}

func safetyStockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safety-stock",
		Short: "Safety stock operations",
	}

	var idempotencyKey string
	setCmd := &cobra.Command{
		Use:   "set <code> <value>",
		Short: "Set an item's safety stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || value < 0 {
				return fmt.Errorf("safety stock must be a whole number of zero or more, got %q", args[1])
			}

			var item dto.ItemResponse
			body := map[string]int64{"safety_stock": value}
			if err := newAPIClient().put(cmd.Context(), itemPath(args[0], "/safety-stock"), idempotencyKey, body, &item); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), item)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Safety stock for %s set to %d\n", item.Code, item.SafetyStock)
			return nil
		},
	}
	setCmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency-Key header to send")

	cmd.AddCommand(setCmd)
	return cmd
}

func shortagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shortages",
		Short: "List items at or below their safety stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var reports []dto.ItemStockResponse
			if err := newAPIClient().get(cmd.Context(), "/api/v1/shortages", &reports); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), reports)
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shortages.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tCURRENT\tSAFETY\tAVAILABLE")
			for _, r := range reports {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n",
					r.Item.Code, r.Item.Name, r.Snapshot.CurrentStock, r.Snapshot.SafetyStock, r.Snapshot.AvailableStock)
			}
			return tw.Flush()
		},
	}
}

func reloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Drop cached ledger data on the server and load it again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ReloadResponse
			if err := newAPIClient().post(cmd.Context(), "/api/v1/cache/reload", &resp); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reloaded %d items and %d transactions at %s\n",
				resp.Items, resp.Transactions, resp.LoadedAt.Format(time.RFC3339))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations (uses DATABASE_URL and MIGRATIONS_PATH)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				version, dirty, err := postgres.MigrationVersion(cfg.DatabaseURL, cfg.MigrationsPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %v)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
