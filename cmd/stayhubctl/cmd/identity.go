package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stayhub/internal/core/id"
	"stayhub/internal/core/role"
	"stayhub/internal/domain/auth"
	"stayhub/internal/infrastructure/storage/postgres"
	"stayhub/internal/infrastructure/storage/postgres/auth_repo"
	"stayhub/internal/infrastructure/storage/postgres/tenant_repo"
)

// passwordEnv supplies the secret when --password is omitted.
const passwordEnv = "STAYHUB_IDENTITY_PASSWORD"

func init() {
	rootCmd.AddCommand(identityCmd)
	identityCmd.AddCommand(identityCreateCmd)

	identityCreateCmd.Flags().String("role", string(role.SuperAdmin), "Role: SUPER_ADMIN, ADMIN, MANAGER, STAFF or GUEST")
	identityCreateCmd.Flags().String("tenant", "", "Tenant slug (required unless the role is SUPER_ADMIN)")
	identityCreateCmd.Flags().String("password", "", "Password (default $"+passwordEnv+")")
	identityCreateCmd.Flags().String("first-name", "", "First name")
	identityCreateCmd.Flags().String("last-name", "", "Last name")
}

var identityCmd = &cobra.Command{
	Use:     "identity",
	Aliases: []string{"user"},
	Short:   "Manage identities",
}

var identityCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create an identity with any role",
	Long: `Create an identity directly in the database.

This is how the first superuser is bootstrapped; the API never grants
SUPER_ADMIN through self-registration.

Examples:
  STAYHUB_IDENTITY_PASSWORD=... stayhubctl identity create root@example.com
  stayhubctl identity create ops@acme.test --role ADMIN --tenant acme --password ...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleFlag, _ := cmd.Flags().GetString("role")
		slug, _ := cmd.Flags().GetString("tenant")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		r, err := role.Parse(roleFlag)
		if err != nil {
			return err
		}
		if password == "" {
			password = os.Getenv(passwordEnv)
		}
		if password == "" {
			return fmt.Errorf("password is required: pass --password or set %s", passwordEnv)
		}
		if !r.IsSuperuser() && slug == "" {
			return fmt.Errorf("--tenant is required for role %s", r)
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		tenants := tenant_repo.NewTenantRepo(db.txm)
		var tenantID *id.ID
		if !r.IsSuperuser() {
			t, err := tenants.GetBySlug(ctx, slug)
			if err != nil {
				return err
			}
			tenantID = &t.ID
		}

		auditService, err := postgres.NewAuditService(db.txm)
		if err != nil {
			return err
		}

		svc := auth.NewService(auth.Deps{
			Identities: auth_repo.NewIdentityRepo(db.txm),
			Tenants:    tenants,
			Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
			TxManager:  db.txm,
			Audit:      auditService,
		}, auth.DefaultServiceConfig())

		identity, err := svc.CreateIdentity(ctx, auth.CreateIdentityRequest{
			Email:     args[0],
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
			Role:      r,
			TenantID:  tenantID,
		})
		if err != nil {
			return err
		}

		if handled, err := formatOutput(identity); handled {
			return err
		}
		fmt.Printf("Created %s identity %s (%s)\n", identity.Role, identity.Email, identity.ID)
		return nil
	},
}
