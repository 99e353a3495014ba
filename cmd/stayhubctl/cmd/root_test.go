package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args against a config file that does not exist,
// so only defaults and the environment apply. Cannot run in parallel: the
// command tree is shared global state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv(passwordEnv, "")

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootCmd_HelpShowsSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"tenant", "identity", "migrate", "numbering"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCmd_CommandTree(t *testing.T) {
	paths := [][]string{
		{"tenant", "create"},
		{"tenant", "list"},
		{"tenant", "activate"},
		{"tenant", "deactivate"},
		{"identity", "create"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"numbering", "set"},
	}
	for _, p := range paths {
		c, _, err := rootCmd.Find(p)
		require.NoError(t, err, p)
		assert.Equal(t, p[len(p)-1], c.Name())
	}
}

func TestRootCmd_RejectsUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "migrate", "version", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestIdentityCreate_RequiresPassword(t *testing.T) {
	_, err := execute(t, "identity", "create", "root@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), passwordEnv)
}

func TestIdentityCreate_TenantRequiredForTenantRoles(t *testing.T) {
	_, err := execute(t, "identity", "create", "staff@example.com", "--role", "STAFF", "--password", "long-enough-secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tenant is required")
}

func TestIdentityCreate_UnknownRole(t *testing.T) {
	_, err := execute(t, "identity", "create", "x@example.com", "--role", "OWNER", "--password", "long-enough-secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestNumberingSet_RejectsNonNumericValue(t *testing.T) {
	_, err := execute(t, "numbering", "set", "acme", "twelve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid last-number")
}

func TestMigrateDown_RejectsZeroSteps(t *testing.T) {
	_, err := execute(t, "migrate", "down", "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps")
}

func TestFormatOutput_TableIsLeftToCaller(t *testing.T) {
	outputFormat = "table"
	handled, err := formatOutput(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.False(t, handled)
}
