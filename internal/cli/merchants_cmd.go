package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// merchantsCmd represents the merchant registry command group
var merchantsCmd = &cobra.Command{
	Use:   "merchants",
	Short: "Merchant registry inspection",
	Long:  `Inspect the merchant catalog used during extraction.`,
}

// merchantsListCmd lists all known merchants
var merchantsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known merchants",
	Run: func(cmd *cobra.Command, args []string) {
		if reg == nil {
			fmt.Fprintln(os.Stderr, "error: registry not initialized")
			os.Exit(1)
		}

		fmt.Printf("%-22s %-12s %-9s %s\n", "Merchant", "Category", "Color", "Aliases")
		fmt.Println(strings.Repeat("-", 70))
		for _, e := range reg.Entries() {
			fmt.Printf("%-22s %-12s %-9s %s\n", e.DisplayName(), e.Category, e.Color, strings.Join(e.Aliases, ", "))
		}
		fmt.Printf("\n%d merchant(s)\n", reg.Len())
	},
}

// merchantsMatchCmd tests matching against an arbitrary string
var merchantsMatchCmd = &cobra.Command{
	Use:   "match <text>",
	Short: "Test which merchant a string matches",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if reg == nil {
			fmt.Fprintln(os.Stderr, "error: registry not initialized")
			os.Exit(1)
		}

		text := strings.Join(args, " ")
		entry := reg.Match(text, false)
		if entry == nil {
			fmt.Println("No match.")
			return
		}

		fmt.Printf("Matched: %s\n", entry.DisplayName())
		fmt.Printf("  Category: %s\n", entry.Category)
		fmt.Printf("  Color: %s\n", entry.Color)
		if len(entry.Aliases) > 0 {
			fmt.Printf("  Aliases: %s\n", strings.Join(entry.Aliases, ", "))
		}
	},
}

func init() {
	merchantsCmd.AddCommand(merchantsListCmd)
	merchantsCmd.AddCommand(merchantsMatchCmd)
}
