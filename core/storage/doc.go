// Package storage provides persistence for uploaded media.
//
// Two backends implement the MediaStore interface:
//
//   - local: plain files under a configured directory, served statically
//     under the public base URL (the default, matching a single-node
//     deployment).
//   - s3: objects in an S3/MinIO bucket via the minio client.
//
// The backend is selected by the "driver" configuration key. Object names
// are generated with ObjectName so uploads never collide and never reuse
// caller-controlled file names.
package storage
