package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kakairsyad/Interior-market/internal/catalog"
)

var (
	listSearch   string
	listCategory string
	listSort     string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the product catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products from the configured catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		provider, closeCatalog, err := openCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer closeCatalog()

		products, err := provider.ListProducts(ctx)
		if err != nil {
			return err
		}
		products = catalog.Filter(products, catalog.Query{
			Search:   listSearch,
			Category: listCategory,
			Sort:     catalog.ParseSortOrder(listSort),
		})

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tFEATURED")
		for _, p := range products {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Featured)
		}
		return tw.Flush()
	},
}

var catalogMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the sqlite catalog and load the sample products",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openSQLiteCatalog(cfg.Catalog.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()

		products := catalog.SampleProducts()
		if err := db.Seed(cmd.Context(), catalog.SampleCategories(), products); err != nil {
			return err
		}
		log.Info("catalog migrated",
			zap.String("path", cfg.Catalog.SQLitePath),
			zap.Int("products", len(products)))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVar(&listSearch, "search", "", "match name, description or designer")
	catalogListCmd.Flags().StringVar(&listCategory, "category", "", "only products in this category")
	catalogListCmd.Flags().StringVar(&listSort, "sort", "newest", "newest, name, price-low or price-high")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogMigrateCmd)
}
