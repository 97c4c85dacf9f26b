// Command dbtool migrates the schema and seeds the menu catalog.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/lazarmura54-arch/Hotel/internal/catalog"
	"github.com/lazarmura54-arch/Hotel/internal/config"
	"github.com/lazarmura54-arch/Hotel/internal/db"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "dbtool",
	Short:        "Database maintenance for the hotel ordering site",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// openDB loads config and opens the database connection
func openDB() (*gorm.DB, error) {
	cfg := config.LoadConfig()
	return db.Open(cfg.DBDriver, cfg.DSN())
}

// dbtool migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users, menu_items and orders tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		return db.Migrate(gdb)
	},
}

// dbtool seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default menus for hotels that have no items yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		// Tables must exist before populating
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		report, err := catalog.NewService(gdb).Seed(cmd.Context(), catalog.DefaultMenu)
		if err != nil {
			return err
		}
		if len(report.Added) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No new items were added.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded hotels: %v (already present: %v)\n", report.Added, report.Skipped)
		return nil
	},
}
