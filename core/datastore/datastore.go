package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Store provides durable CRUD over the inventory document.
//
// All mutations serialize on an internal mutex held across the full
// read-modify-write cycle, so concurrent callers never drop each other's
// updates.
type Store struct {
	path string
	mu   sync.Mutex

	// now is swappable in tests for stable ids.
	now func() time.Time
}

// New creates a Store backed by the JSON document at cfg.Path.
// The file is created lazily on first write.
func New(cfg Config) *Store {
	return &Store{path: cfg.Path, now: time.Now}
}

// read loads the document from disk. A missing file reads as an empty
// document so first runs bootstrap cleanly.
func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &document{}, nil
		}
		return nil, fmt.Errorf("failed to read datastore: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse datastore: %w", err)
	}
	return &doc, nil
}

// write replaces the document on disk. The write goes through a temp file
// and rename so a failure mid-write never truncates existing data.
func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode datastore: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create datastore directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write datastore: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close datastore: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace datastore: %w", err)
	}
	return nil
}

// nextID returns an identifier unused by either collection. Ids are
// millisecond timestamps bumped past the current document maximum, which
// keeps them compatible with documents written by earlier versions.
func (s *Store) nextID(doc *document) int64 {
	id := s.now().UnixMilli()
	for _, item := range doc.Items {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	for _, img := range doc.UploadedImages {
		if img.ID >= id {
			id = img.ID + 1
		}
	}
	return id
}

// GetItems returns all inventory items in persisted order.
func (s *Store) GetItems() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// SetItems replaces the whole items collection, leaving uploaded images
// untouched.
func (s *Store) SetItems(items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Items = items
	return s.write(doc)
}

// UpsertItem adds delta to the quantity of the item whose name matches
// case-insensitively, creating the item when no match exists. The new item
// keeps the given name as-is. Quantities clamp at zero.
func (s *Store) UpsertItem(name string, delta int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return Item{}, err
	}

	for i := range doc.Items {
		if strings.EqualFold(doc.Items[i].Name, name) {
			doc.Items[i].Quantity = clamp(doc.Items[i].Quantity + delta)
			if err := s.write(doc); err != nil {
				return Item{}, err
			}
			return doc.Items[i], nil
		}
	}

	item := Item{ID: s.nextID(doc), Name: name, Quantity: clamp(delta)}
	doc.Items = append(doc.Items, item)
	if err := s.write(doc); err != nil {
		return Item{}, err
	}
	return item, nil
}

// UpdateItemQuantity adds delta to the item with the given id, clamping the
// result at zero. It returns nil when no such item exists.
func (s *Store) UpdateItemQuantity(id int64, delta int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range doc.Items {
		if doc.Items[i].ID == id {
			doc.Items[i].Quantity = clamp(doc.Items[i].Quantity + delta)
			if err := s.write(doc); err != nil {
				return nil, err
			}
			item := doc.Items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// EnsureDefaultItems inserts any missing default inventory entries at
// quantity zero. It is idempotent and returns the full items collection.
func (s *Store) EnsureDefaultItems() ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	changed := false
	for _, def := range DefaultItems {
		exists := false
		for _, item := range doc.Items {
			if strings.EqualFold(item.Name, def.Name) {
				exists = true
				break
			}
		}
		if !exists {
			doc.Items = append(doc.Items, Item{
				ID:       s.nextID(doc),
				Name:     def.Name,
				Quantity: def.Quantity,
			})
			changed = true
		}
	}

	if changed {
		if err := s.write(doc); err != nil {
			return nil, err
		}
	}
	return doc.Items, nil
}

// GetUploadedImages returns all uploaded-image records in persisted order.
func (s *Store) GetUploadedImages() ([]UploadedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.UploadedImages, nil
}

// AddUploadedImage appends a new uploaded-image record, assigning an id and
// creation time when the caller left them zero.
func (s *Store) AddUploadedImage(img UploadedImage) (UploadedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return UploadedImage{}, err
	}

	if img.ID == 0 {
		img.ID = s.nextID(doc)
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = s.now().UTC()
	}
	doc.UploadedImages = append(doc.UploadedImages, img)
	if err := s.write(doc); err != nil {
		return UploadedImage{}, err
	}
	return img, nil
}

// UpdateDetectionCount records detection results for the image with the
// given public URL. Unknown URLs are ignored.
func (s *Store) UpdateDetectionCount(publicURL string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for i := range doc.UploadedImages {
		if doc.UploadedImages[i].PublicURL == publicURL {
			doc.UploadedImages[i].DetectionCount = count
			return s.write(doc)
		}
	}
	return nil
}

func clamp(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity
}
