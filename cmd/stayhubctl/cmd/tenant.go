package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stayhub/internal/domain/tenant"
	"stayhub/internal/infrastructure/storage/postgres/tenant_repo"
)

func init() {
	rootCmd.AddCommand(tenantCmd)
	tenantCmd.AddCommand(tenantCreateCmd)
	tenantCmd.AddCommand(tenantListCmd)
	tenantCmd.AddCommand(tenantActivateCmd)
	tenantCmd.AddCommand(tenantDeactivateCmd)

	tenantCreateCmd.Flags().StringP("name", "n", "", "Display name (defaults to the slug)")

	tenantListCmd.Flags().String("search", "", "Filter by name or slug")
	tenantListCmd.Flags().Bool("active-only", false, "Only list active tenants")
	tenantListCmd.Flags().Int("limit", 100, "Maximum number of tenants")
}

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
	Long:  `Commands to create, list, activate and deactivate tenants.`,
}

func withTenantService(cmd *cobra.Command, fn func(svc *tenant.Service) error) error {
	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(tenant.NewService(tenant_repo.NewTenantRepo(db.txm), db.txm))
}

var tenantCreateCmd = &cobra.Command{
	Use:     "create <slug>",
	Aliases: []string{"add"},
	Short:   "Create a new tenant",
	Long: `Create a new active tenant.

Examples:
  stayhubctl tenant create acme --name "Acme Rentals"
  stayhubctl tenant create seaside`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = args[0]
		}
		return withTenantService(cmd, func(svc *tenant.Service) error {
			t, err := svc.Create(cmd.Context(), tenant.CreateInput{Name: name, Slug: args[0]})
			if err != nil {
				return err
			}
			if handled, err := formatOutput(t); handled {
				return err
			}
			fmt.Printf("Created tenant %s (%s)\n", t.Slug, t.ID)
			return nil
		})
	},
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		activeOnly, _ := cmd.Flags().GetBool("active-only")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := tenant.Filter{Search: search, Limit: limit}
		if activeOnly {
			active := true
			filter.IsActive = &active
		}

		return withTenantService(cmd, func(svc *tenant.Service) error {
			tenants, total, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if handled, err := formatOutput(tenants); handled {
				return err
			}

			if len(tenants) == 0 {
				fmt.Println("No tenants found. Use 'stayhubctl tenant create' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tNAME\tACTIVE\tID\tCREATED")
			for _, t := range tenants {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
					t.Slug, t.Name, t.IsActive, t.ID, t.CreatedAt.Format("2006-01-02"))
			}
			w.Flush()
			if total > len(tenants) {
				fmt.Printf("\nShowing %d of %d tenants\n", len(tenants), total)
			}
			return nil
		})
	},
}

var tenantActivateCmd = &cobra.Command{
	Use:   "activate <slug>",
	Short: "Reopen a tenant for self-registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTenantActive(cmd, args[0], true)
	},
}

var tenantDeactivateCmd = &cobra.Command{
	Use:     "deactivate <slug>",
	Aliases: []string{"suspend"},
	Short:   "Close a tenant to self-registration",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTenantActive(cmd, args[0], false)
	},
}

func setTenantActive(cmd *cobra.Command, slug string, active bool) error {
	return withTenantService(cmd, func(svc *tenant.Service) error {
		t, err := svc.SetActive(cmd.Context(), slug, active)
		if err != nil {
			return err
		}
		if handled, err := formatOutput(t); handled {
			return err
		}
		fmt.Printf("Tenant %s active=%t\n", t.Slug, t.IsActive)
		return nil
	})
}
