// Command spellctl is the operator CLI for the Spellcasters bot: it validates
// the upstream dataset, queries the catalog and deploys slash commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
