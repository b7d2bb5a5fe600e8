// Package inventory implements the safety-equipment inventory feature.
//
// It owns the items collection of the datastore and the reconciliation of
// detection results into item quantities.
//
// # Components
//
//   - Service: list/adjust/upsert operations plus detection reconciliation
//     via the reconcile subpackage.
//   - Handler: exposes the HTTP endpoints.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /items            : list all items, seeding defaults on first run.
//   - POST /items            : adjust one item by id, or upsert by name.
//   - POST /add-to-inventory : reconcile a detection batch (or class count
//     map) into the inventory.
package inventory
