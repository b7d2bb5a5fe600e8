// Package detect implements the server-side detection pipeline.
//
// One request does what the browser previously drove through four calls:
// the uploaded media is stored, sent to the external detection service,
// the upload's detection count is recorded, and the detections are
// reconciled into the inventory. The response bundles the detector output
// with the inventory report.
//
// # HTTP Endpoints
//
//   - POST /detect       : image pipeline (per-detection results).
//   - POST /detect-video : video pipeline (aggregate class counts).
package detect
