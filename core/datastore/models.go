package datastore

import "time"

// Item is a tracked piece of inventory.
type Item struct {
	// ID is the unique identifier of the item.
	ID int64 `json:"id"`

	// Name is the canonical display name, e.g. "Fire Extinguisher".
	// Names are unique case-insensitively across the collection.
	Name string `json:"name"`

	// Quantity is the current count. Never negative.
	Quantity int `json:"quantity"`
}

// UploadedImage is the record kept for every piece of uploaded media.
type UploadedImage struct {
	// ID is the unique identifier of the record.
	ID int64 `json:"id"`

	// FileName is the original name of the uploaded file.
	FileName string `json:"file_name"`

	// StoragePath is where the media store placed the file.
	StoragePath string `json:"storage_path"`

	// PublicURL is the URL the file is served under. It is the unique
	// lookup key for detection-count updates.
	PublicURL string `json:"public_url"`

	// ContentType is the MIME type reported at upload time.
	ContentType string `json:"content_type"`

	// SizeBytes is the size of the uploaded file.
	SizeBytes int64 `json:"size_bytes"`

	// DetectionCount is the number of objects detected in the media.
	// Zero until detection results come back.
	DetectionCount int `json:"detection_count"`

	// CreatedAt is when the upload was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// document is the persisted aggregate. It is always written as a whole.
type document struct {
	Items          []Item          `json:"items"`
	UploadedImages []UploadedImage `json:"uploaded_images"`
}

// DefaultItems are the inventory entries seeded on first run.
var DefaultItems = []Item{
	{Name: "Fire Extinguisher", Quantity: 0},
	{Name: "Toolbox", Quantity: 0},
	{Name: "Oxygen Tank", Quantity: 0},
}
