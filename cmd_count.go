package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sengkeat-dex/Tokenize/client"
)

var (
	countServer string
	countJSON   bool
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count the server's components by main type",
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().StringVar(&countServer, "server", "http://localhost:3030", "base URL of a running server")
	countCmd.Flags().BoolVar(&countJSON, "json", false, "print JSON instead of a table")
}

func runCount(cmd *cobra.Command, args []string) error {
	components, err := client.New(countServer).Components(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch components: %w", err)
	}
	counts := client.CountByMainType(components)

	if countJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MAIN TYPE\tCOUNT")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.MainType, c.Count)
	}
	return w.Flush()
}
