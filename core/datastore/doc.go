// Package datastore provides the flat-file persistence layer for the
// SpaceSavers inventory.
//
// All state lives in a single JSON document with two collections:
//
//	{
//	  "items": [...],
//	  "uploaded_images": [...]
//	}
//
// Every operation is a full read-modify-write cycle against that document.
// A store-wide mutex is held across the whole cycle so concurrent callers
// observe linearized updates instead of the classic lost-update race.
// Writes go through a temp file and rename, so a crashed write never leaves
// a truncated document behind.
//
// # Bootstrap
//
// A missing or unreadable backing file reads as an empty document. The
// default inventory items are not inserted implicitly on read; callers run
// the idempotent EnsureDefaultItems once at startup (or before listing).
//
// # Invariants
//
//   - Item quantities never go below zero; both mutation paths clamp.
//   - Item names are unique case-insensitively; UpsertItem never creates a
//     duplicate differing only in case.
//   - Collections keep insertion order.
package datastore
