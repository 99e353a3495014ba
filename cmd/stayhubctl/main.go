// Command stayhubctl administers a stayhub deployment: tenants, superusers,
// schema migrations and document numbering.
package main

import (
	"os"

	"stayhub/cmd/stayhubctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
