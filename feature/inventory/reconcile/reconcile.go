package reconcile

import (
	"sort"
	"strings"

	"spacesavers/core/datastore"
	"spacesavers/core/detector"

	"go.uber.org/zap"
)

// Store is the subset of datastore operations the reconciler needs.
type Store interface {
	GetItems() ([]datastore.Item, error)
	UpsertItem(name string, delta int) (datastore.Item, error)
}

// Reconciler converts detection batches into inventory deltas and applies
// them. Application is additive: the same batch applied twice doubles the
// quantities. There is no deduplication.
type Reconciler struct {
	store   Store
	aliases Aliases
	logger  *zap.Logger
}

// New creates a Reconciler. A nil alias table falls back to DefaultAliases.
func New(store Store, aliases Aliases, logger *zap.Logger) *Reconciler {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Reconciler{store: store, aliases: aliases, logger: logger}
}

// Apply reconciles a batch of raw detections into the inventory.
// An empty batch is a no-op success.
func (r *Reconciler) Apply(detections []detector.Detection) (*Report, error) {
	counts := make(map[string]int, len(detections))
	for _, d := range detections {
		counts[r.aliases.Canonical(d.ClassName)]++
	}
	return r.apply(counts, len(detections))
}

// ApplyCounts reconciles a pre-aggregated class -> count map, as returned
// by the batch/video detection path.
func (r *Reconciler) ApplyCounts(classCounts map[string]int) (*Report, error) {
	counts := make(map[string]int, len(classCounts))
	total := 0
	for className, count := range classCounts {
		counts[r.aliases.Canonical(className)] += count
		total += count
	}
	return r.apply(counts, total)
}

// apply merges per-canonical-name counts into the store. Names are applied
// in sorted order so reports are deterministic.
func (r *Reconciler) apply(counts map[string]int, total int) (*Report, error) {
	report := &Report{Summary: Summary{
		TotalDetections: total,
		UniqueClasses:   len(counts),
	}}
	if len(counts) == 0 {
		return report, nil
	}

	items, err := r.store.GetItems()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target, found := resolveTarget(items, name)

		item, err := r.store.UpsertItem(target, counts[name])
		if err != nil {
			return nil, err
		}

		if found {
			report.Summary.UpdatedItems++
		} else {
			report.Summary.CreatedItems++
		}
		report.Results = append(report.Results, Result{
			Name:     item.Name,
			Applied:  counts[name],
			Created:  !found,
			Quantity: item.Quantity,
		})

		r.logger.Debug("Reconciled detection class",
			zap.String("item", item.Name),
			zap.Int("applied", counts[name]),
			zap.Int("quantity", item.Quantity))
	}

	return report, nil
}

// resolveTarget picks the store item a canonical name maps to: an exact
// name match first, then a case-insensitive one. When neither exists the
// canonical name itself becomes the target of a fresh item.
func resolveTarget(items []datastore.Item, name string) (string, bool) {
	for _, item := range items {
		if item.Name == name {
			return item.Name, true
		}
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, name) {
			return item.Name, true
		}
	}
	return name, false
}
