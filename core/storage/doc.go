// Package storage mirrors store snapshots to object storage.
//
// It wraps the MinIO Go client, which supports both AWS S3 and self-hosted MinIO.
// Before a command rewrites osu!.db, scores.db or collection.db, the current file is
// compressed with zstd and uploaded under <prefix>/<run_id>/<file>.zst, so every run
// can be rolled back independently of the local backup files.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	mirror := storage.NewMirror(client, cfg.Storage.Bucket, cfg.Storage.Prefix, runID, log)
//	err = mirror.Snapshot(ctx, paths.Scores())
package storage
