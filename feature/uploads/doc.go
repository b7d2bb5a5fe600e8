// Package uploads implements uploaded-media handling.
//
// Media files go to the configured storage backend (local directory or S3
// bucket); an UploadedImage record with detection count zero is appended to
// the datastore for every upload. The detection count is set once results
// come back, keyed by the upload's public URL.
//
// # HTTP Endpoints
//
//   - POST /upload-image           : store a multipart upload, return its public URL.
//   - GET  /uploaded-images        : list all records.
//   - POST /update-detection-count : record detection results for an upload.
package uploads
