package datastore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"spacesavers/core/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *datastore.Store {
	t.Helper()
	dir := t.TempDir()
	return datastore.New(datastore.Config{Path: filepath.Join(dir, "data", "db.json")})
}

func TestGetItems_MissingFile(t *testing.T) {
	store := newStore(t)

	items, err := store.GetItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpsertItem_CreatesWithGivenName(t *testing.T) {
	store := newStore(t)

	item, err := store.UpsertItem("Fire Extinguisher", 2)
	require.NoError(t, err)
	assert.Equal(t, "Fire Extinguisher", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.NotZero(t, item.ID)
}

func TestUpsertItem_CaseInsensitiveMatch(t *testing.T) {
	store := newStore(t)

	first, err := store.UpsertItem("toolbox", 3)
	require.NoError(t, err)

	// A casing variant must update the existing record, never duplicate it.
	updated, err := store.UpsertItem("ToolBox", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "toolbox", updated.Name)
	assert.Equal(t, 4, updated.Quantity)

	items, err := store.GetItems()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpsertItem_ClampsAtZero(t *testing.T) {
	store := newStore(t)

	_, err := store.UpsertItem("Oxygen Tank", 5)
	require.NoError(t, err)

	item, err := store.UpsertItem("Oxygen Tank", -10)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}

func TestUpdateItemQuantity_ClampsAtZero(t *testing.T) {
	store := newStore(t)

	created, err := store.UpsertItem("Oxygen Tank", 5)
	require.NoError(t, err)

	item, err := store.UpdateItemQuantity(created.ID, -10)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 0, item.Quantity)
}

func TestUpdateItemQuantity_NotFound(t *testing.T) {
	store := newStore(t)

	item, err := store.UpdateItemQuantity(12345, 1)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestEnsureDefaultItems_Idempotent(t *testing.T) {
	store := newStore(t)

	items, err := store.EnsureDefaultItems()
	require.NoError(t, err)
	require.Len(t, items, 3)

	again, err := store.EnsureDefaultItems()
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestEnsureDefaultItems_KeepsExistingCasing(t *testing.T) {
	store := newStore(t)

	_, err := store.UpsertItem("toolbox", 7)
	require.NoError(t, err)

	items, err := store.EnsureDefaultItems()
	require.NoError(t, err)
	require.Len(t, items, 3)

	// The lowercase record satisfies the Toolbox default.
	assert.Equal(t, "toolbox", items[0].Name)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetItems_PreservesUploadedImages(t *testing.T) {
	store := newStore(t)

	_, err := store.AddUploadedImage(datastore.UploadedImage{
		FileName:  "photo.jpg",
		PublicURL: "/uploads/photo.jpg",
	})
	require.NoError(t, err)

	err = store.SetItems([]datastore.Item{{ID: 1, Name: "Toolbox", Quantity: 1}})
	require.NoError(t, err)

	images, err := store.GetUploadedImages()
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestAddUploadedImage_AssignsIDAndTimestamp(t *testing.T) {
	store := newStore(t)

	img, err := store.AddUploadedImage(datastore.UploadedImage{
		FileName:    "photo.jpg",
		PublicURL:   "/uploads/abc.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1234,
	})
	require.NoError(t, err)
	assert.NotZero(t, img.ID)
	assert.False(t, img.CreatedAt.IsZero())
	assert.Equal(t, 0, img.DetectionCount)
}

func TestUpdateDetectionCount(t *testing.T) {
	store := newStore(t)

	_, err := store.AddUploadedImage(datastore.UploadedImage{
		FileName:  "photo.jpg",
		PublicURL: "/uploads/abc.jpg",
	})
	require.NoError(t, err)

	err = store.UpdateDetectionCount("/uploads/abc.jpg", 4)
	require.NoError(t, err)

	images, err := store.GetUploadedImages()
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, 4, images[0].DetectionCount)

	// Unknown URLs are ignored, matching the original behaviour.
	err = store.UpdateDetectionCount("/uploads/missing.jpg", 9)
	require.NoError(t, err)
}

func TestPersistedShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")
	store := datastore.New(datastore.Config{Path: path})

	_, err := store.UpsertItem("Fire Extinguisher", 1)
	require.NoError(t, err)
	_, err = store.AddUploadedImage(datastore.UploadedImage{
		FileName:  "a.png",
		PublicURL: "/uploads/a.png",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "items")
	assert.Contains(t, doc, "uploaded_images")

	var items []map[string]any
	require.NoError(t, json.Unmarshal(doc["items"], &items))
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "id")
	assert.Contains(t, items[0], "name")
	assert.Contains(t, items[0], "quantity")
}

func TestReadsExistingDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db.json")

	// Document written by the previous implementation.
	legacy := `{
  "items": [
    { "id": 1713200000000, "name": "Oxygen Tank", "quantity": 5 }
  ],
  "uploaded_images": []
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	store := datastore.New(datastore.Config{Path: path})
	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1713200000000), items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestConcurrentUpserts_NoLostUpdates(t *testing.T) {
	store := newStore(t)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := store.UpsertItem("Toolbox", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := store.GetItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, writers, items[0].Quantity)
}
