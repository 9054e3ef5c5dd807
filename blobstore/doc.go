// Package blobstore abstracts object storage for remote backups. A Store
// holds named opaque objects; backends exist for the local file system,
// memory (tests), MinIO, and S3.
package blobstore
