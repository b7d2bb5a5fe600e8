package inventory

import (
	"spacesavers/core/datastore"
	"spacesavers/core/detector"
	"spacesavers/feature/inventory/reconcile"

	"go.uber.org/zap"
)

// Service handles inventory operations.
type Service struct {
	store      *datastore.Store
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
}

// NewService creates a new inventory service. A nil alias table uses the
// default detector vocabulary.
func NewService(store *datastore.Store, aliases reconcile.Aliases, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		reconciler: reconcile.New(store, aliases, logger),
		logger:     logger,
	}
}

// ListItems returns all inventory items, seeding the defaults first so a
// fresh deployment never serves an empty inventory.
func (s *Service) ListItems() ([]datastore.Item, error) {
	return s.store.EnsureDefaultItems()
}

// AdjustQuantity applies a delta to the item with the given id. The result
// is nil when no such item exists.
func (s *Service) AdjustQuantity(id int64, delta int) (*datastore.Item, error) {
	return s.store.UpdateItemQuantity(id, delta)
}

// UpsertItem creates or increments an item by name.
func (s *Service) UpsertItem(name string, delta int) (datastore.Item, error) {
	return s.store.UpsertItem(name, delta)
}

// AddDetections reconciles a raw detection batch into the inventory.
func (s *Service) AddDetections(detections []detector.Detection) (*reconcile.Report, error) {
	return s.reconciler.Apply(detections)
}

// AddCounts reconciles a pre-aggregated class count map (video path).
func (s *Service) AddCounts(classCounts map[string]int) (*reconcile.Report, error) {
	return s.reconciler.ApplyCounts(classCounts)
}
