package cmd

import (
	"log"

	"spacesavers/core/config"
	"spacesavers/core/datastore"
	"spacesavers/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the datastore with the default inventory items",
	Long: `Creates the datastore file if it does not exist and inserts the
default inventory items. Items that already exist are left untouched,
so running seed repeatedly is safe.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		store := datastore.New(cfg.Datastore)
		items, err := store.EnsureDefaultItems()
		if err != nil {
			logg.Fatal("Failed to seed datastore", zap.Error(err))
		}

		logg.Info("Datastore seeded",
			zap.String("path", cfg.Datastore.Path),
			zap.Int("items", len(items)))
		for _, item := range items {
			logg.Info("Item",
				zap.Int64("id", item.ID),
				zap.String("name", item.Name),
				zap.Int("quantity", item.Quantity))
		}
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
