package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssgeek/commerce/internal/repository/postgres"
	"github.com/ssgeek/commerce/internal/service"
)

var findBySKU bool

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Inspect the storefront catalog",
}

// storefrontctl product find <term> [--sku]
var productFindCmd = &cobra.Command{
	Use:     "find [term]",
	Short:   "Search products by name, or by SKU with --sku",
	Example: `storefrontctl product find MUG --sku`,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}

		_, logger, db, err := boot(false)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		catalog := service.NewCatalogService(postgres.NewRepositories(db, logger), logger)
		name, sku := term, ""
		if findBySKU {
			name, sku = "", term
		}

		fmt.Printf("🔍 Searching for: %q\n\n", term)
		products, err := catalog.Search(cmd.Context(), name, sku)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("❌ No products found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tSKU\tNAME\tPRICE")
		fmt.Fprintln(w, "--\t---\t----\t-----")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.SKU, p.Name, p.Price.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	productFindCmd.Flags().BoolVar(&findBySKU, "sku", false, "match the term against SKUs instead of names")
	productCmd.AddCommand(productFindCmd)
}
