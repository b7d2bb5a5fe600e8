package cmd

import (
	"encoding/json"
	"log"
	"os"

	"spacesavers/core/config"
	"spacesavers/core/datastore"
	"spacesavers/core/detector"
	"spacesavers/core/logger"
	"spacesavers/feature/inventory/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// detectionFile mirrors the detection service response shape, so a saved
// response can be replayed against the datastore as-is.
type detectionFile struct {
	Detections  []detector.Detection `json:"detections"`
	ClassCounts map[string]int       `json:"class_counts"`
}

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <detections.json>",
	Short: "Apply a saved detection result to the inventory",
	Long: `Reads a JSON file containing a detection service response, either a
"detections" array (image) or a "class_counts" map (video), and applies
the counts to the inventory datastore.`,
	Args: cobra.ExactArgs(1),
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

		data, err := os.ReadFile(args[0])
		if err != nil {
			logg.Fatal("Failed to read detections file", zap.Error(err))
		}

		var file detectionFile
		if err := json.Unmarshal(data, &file); err != nil {
			logg.Fatal("Failed to parse detections file", zap.Error(err))
		}
		if len(file.Detections) == 0 && len(file.ClassCounts) == 0 {
			logg.Fatal("Detections file contains no detections or class counts",
				zap.String("file", args[0]))
		}

		store := datastore.New(cfg.Datastore)
		if _, err := store.EnsureDefaultItems(); err != nil {
			logg.Fatal("Failed to bootstrap datastore", zap.Error(err))
		}

		rec := reconcile.New(store, nil, logg)

		var report *reconcile.Report
		if len(file.Detections) > 0 {
			report, err = rec.Apply(file.Detections)
		} else {
			report, err = rec.ApplyCounts(file.ClassCounts)
		}
		if err != nil {
			logg.Fatal("Reconciliation failed", zap.Error(err))
		}

		for _, res := range report.Results {
			logg.Info("Reconciled item",
				zap.String("name", res.Name),
				zap.Int("applied", res.Applied),
				zap.Bool("created", res.Created),
				zap.Int("quantity", res.Quantity))
		}
		logg.Info("Reconciliation complete",
			zap.Int("total_detections", report.Summary.TotalDetections),
			zap.Int("unique_classes", report.Summary.UniqueClasses),
			zap.Int("created_items", report.Summary.CreatedItems),
			zap.Int("updated_items", report.Summary.UpdatedItems))
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}
