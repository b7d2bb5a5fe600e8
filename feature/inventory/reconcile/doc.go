// Package reconcile turns object-detection output into inventory deltas.
//
// A batch of raw detections (or a pre-aggregated class -> count map) is
// normalized to canonical item names through a fixed alias table,
// accumulated per name, and merged additively into the datastore via its
// case-insensitive upsert. Unknown classes create new items on first
// occurrence, so the tracked-item vocabulary extends itself.
//
// Reconciliation is deliberately not idempotent: applying the same batch
// twice doubles the counts. Deduplication, if wanted, belongs to the
// caller.
package reconcile
