// Package detector is the HTTP client for the external object-detection
// service.
//
// The service is consumed as an opaque remote endpoint: it accepts an image
// or video as multipart form data and answers with JSON. Two calls exist:
//
//   - POST /detect: single image, returns a list of detections with class
//     name, confidence and bounding box.
//   - POST /detect-video: video, returns a class_name -> count map plus
//     annotated frames.
//
// Failures are reported to the caller as-is; the client never retries.
package detector
