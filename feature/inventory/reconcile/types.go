package reconcile

// Result represents the reconciliation outcome for a single inventory item.
type Result struct {
	// Name is the name of the affected item, as stored (original casing).
	Name string `json:"name"`

	// Applied is the count added to the item by this batch.
	Applied int `json:"applied"`

	// Created indicates the item did not exist before this batch.
	Created bool `json:"created"`

	// Quantity is the item's quantity after the update.
	Quantity int `json:"quantity"`
}

// Summary provides aggregate counts for a reconcile report.
type Summary struct {
	// TotalDetections is the number of detections in the batch.
	TotalDetections int `json:"total_detections"`

	// UniqueClasses is the number of distinct canonical names seen.
	UniqueClasses int `json:"unique_classes"`

	// CreatedItems counts items created by this batch.
	CreatedItems int `json:"created_items"`

	// UpdatedItems counts pre-existing items that received a delta.
	UpdatedItems int `json:"updated_items"`
}

// Report contains per-item results and the batch summary.
type Report struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}
