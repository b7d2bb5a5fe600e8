package reconcile_test

import (
	"path/filepath"
	"testing"

	"spacesavers/core/datastore"
	"spacesavers/core/detector"
	"spacesavers/feature/inventory/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReconciler(t *testing.T) (*reconcile.Reconciler, *datastore.Store) {
	t.Helper()
	store := datastore.New(datastore.Config{Path: filepath.Join(t.TempDir(), "db.json")})
	return reconcile.New(store, nil, zap.NewNop()), store
}

func detections(classNames ...string) []detector.Detection {
	out := make([]detector.Detection, 0, len(classNames))
	for _, name := range classNames {
		out = append(out, detector.Detection{ClassName: name, Confidence: 0.9})
	}
	return out
}

func TestAliases_Canonical(t *testing.T) {
	tests := []struct {
		className string
		want      string
	}{
		{"FireExtinguisher", "Fire Extinguisher"},
		{"ToolBox", "Toolbox"},
		{"OxygenTank", "Oxygen Tank"},
		{"SpaceHelmet", "SpaceHelmet"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.className, func(t *testing.T) {
			assert.Equal(t, tt.want, reconcile.DefaultAliases.Canonical(tt.className))
		})
	}
}

func TestApply_EmptyBatch(t *testing.T) {
	rec, store := newReconciler(t)

	report, err := rec.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Summary.TotalDetections)

	items, err := store.GetItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestApply_Scenario(t *testing.T) {
	rec, store := newReconciler(t)

	report, err := rec.Apply(detections("FireExtinguisher", "ToolBox", "ToolBox"))
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fire Extinguisher", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "Toolbox", items[1].Name)
	assert.Equal(t, 2, items[1].Quantity)

	assert.Equal(t, 3, report.Summary.TotalDetections)
	assert.Equal(t, 2, report.Summary.UniqueClasses)
	assert.Equal(t, 2, report.Summary.CreatedItems)
	assert.Equal(t, 0, report.Summary.UpdatedItems)
}

func TestApply_AccumulatesNotIdempotent(t *testing.T) {
	rec, store := newReconciler(t)

	_, err := rec.Apply(detections("FireExtinguisher"))
	require.NoError(t, err)
	_, err = rec.Apply(detections("FireExtinguisher"))
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestApply_CaseInsensitiveFallback(t *testing.T) {
	rec, store := newReconciler(t)

	// Lowercase record already present; "ToolBox" maps to "Toolbox".
	_, err := store.UpsertItem("toolbox", 3)
	require.NoError(t, err)

	report, err := rec.Apply(detections("ToolBox"))
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "toolbox", items[0].Name)
	assert.Equal(t, 4, items[0].Quantity)

	require.Len(t, report.Results, 1)
	assert.False(t, report.Results[0].Created)
	assert.Equal(t, "toolbox", report.Results[0].Name)
}

func TestApply_UnknownClassCreatesItem(t *testing.T) {
	rec, store := newReconciler(t)

	report, err := rec.Apply(detections("SpaceHelmet", "SpaceHelmet"))
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SpaceHelmet", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.NotZero(t, items[0].ID)

	require.Len(t, report.Results, 1)
	assert.True(t, report.Results[0].Created)
}

func TestApplyCounts(t *testing.T) {
	rec, store := newReconciler(t)

	report, err := rec.ApplyCounts(map[string]int{
		"FireExtinguisher": 3,
		"OxygenTank":       1,
	})
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Applied in sorted canonical order.
	assert.Equal(t, "Fire Extinguisher", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "Oxygen Tank", items[1].Name)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, 4, report.Summary.TotalDetections)
}

func TestApplyCounts_Empty(t *testing.T) {
	rec, _ := newReconciler(t)

	report, err := rec.ApplyCounts(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
}

func TestApply_CustomAliases(t *testing.T) {
	store := datastore.New(datastore.Config{Path: filepath.Join(t.TempDir(), "db.json")})
	rec := reconcile.New(store, reconcile.Aliases{"Helmet": "Space Helmet"}, zap.NewNop())

	_, err := rec.Apply(detections("Helmet"))
	require.NoError(t, err)

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Space Helmet", items[0].Name)
}
