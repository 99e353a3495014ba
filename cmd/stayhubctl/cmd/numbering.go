package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stayhub/internal/domain/invoice"
	"stayhub/internal/infrastructure/numerator"
	"stayhub/internal/infrastructure/storage/postgres/tenant_repo"
)

func init() {
	rootCmd.AddCommand(numberingCmd)
	numberingCmd.AddCommand(numberingSetCmd)

	numberingSetCmd.Flags().Int("year", 0, "Sequence year (defaults to the current year)")
}

var numberingCmd = &cobra.Command{
	Use:   "numbering",
	Short: "Manage per-tenant invoice numbering",
}

var numberingSetCmd = &cobra.Command{
	Use:   "set <tenant-slug> <last-number>",
	Short: "Set the last issued invoice number of a tenant",
	Long: `Move a tenant's invoice sequence so the next invoice gets last-number+1.

Use it after importing invoices numbered elsewhere.

Examples:
  stayhubctl numbering set acme 120
  stayhubctl numbering set acme 0 --year 2027`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		last, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid last-number %q: %w", args[1], err)
		}

		period := time.Now().UTC()
		if year, _ := cmd.Flags().GetInt("year"); year != 0 {
			period = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		t, err := tenant_repo.NewTenantRepo(db.txm).GetBySlug(ctx, args[0])
		if err != nil {
			return err
		}

		numbers := numerator.New(numerator.QuerierProviderFunc(func(ctx context.Context) numerator.Querier {
			return db.txm.GetQuerier(ctx)
		}))
		if err := numbers.SetNextNumber(ctx, t.ID, invoice.NumberConfig, period, last); err != nil {
			return err
		}

		fmt.Printf("Next invoice of %s: %s\n", t.Slug, invoice.NumberConfig.Format(period, last+1))
		return nil
	},
}
