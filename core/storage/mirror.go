package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

const snapshotExt = ".zst"

// Snapshotter preserves a copy of a store file before it is rewritten.
type Snapshotter interface {
	Snapshot(ctx context.Context, filePath string) error
}

// Nop is a Snapshotter that does nothing. It is used when no endpoint is configured.
type Nop struct{}

// Snapshot implements Snapshotter.
func (Nop) Snapshot(context.Context, string) error { return nil }

// Mirror uploads zstd-compressed copies of store files to a bucket, grouped by run.
type Mirror struct {
	client Client
	bucket string
	prefix string
	runID  string
	logger *zap.Logger

	bucketOnce sync.Once
	bucketErr  error
}

// NewMirror creates a mirror writing below <prefix>/<runID>/ in bucket.
func NewMirror(client Client, bucket, prefix, runID string, logger *zap.Logger) *Mirror {
	return &Mirror{
		client: client,
		bucket: bucket,
		prefix: prefix,
		runID:  runID,
		logger: logger,
	}
}

// ObjectKey returns the key a snapshot of filePath is stored under.
func (m *Mirror) ObjectKey(filePath string) string {
	return path.Join(m.prefix, m.runID, filepath.Base(filePath)+snapshotExt)
}

// Snapshot uploads the current content of filePath. A missing file has nothing to
// preserve and is skipped.
func (m *Mirror) Snapshot(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s for snapshot: %w", filePath, err)
	}

	if err := m.ensureBucket(ctx); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(data, make([]byte, 0, len(data)/4))
	_ = enc.Close()

	key := m.ObjectKey(filePath)
	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(compressed), int64(len(compressed)), minio.PutObjectOptions{
		ContentType: "application/zstd",
		UserMetadata: map[string]string{
			"original-size": strconv.Itoa(len(data)),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	m.logger.Info("Snapshot uploaded",
		zap.String("bucket", m.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.Int("compressed_size", len(compressed)),
	)
	return nil
}

func (m *Mirror) ensureBucket(ctx context.Context) error {
	m.bucketOnce.Do(func() {
		exists, err := m.client.BucketExists(ctx, m.bucket)
		if err != nil {
			m.bucketErr = fmt.Errorf("failed to check bucket %s: %w", m.bucket, err)
			return
		}
		if exists {
			return
		}
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			m.bucketErr = fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
		}
	})
	return m.bucketErr
}

// List returns the base names of the files snapshotted by run, sorted.
func (m *Mirror) List(ctx context.Context, runID string) ([]string, error) {
	prefix := path.Join(m.prefix, runID) + "/"
	var names []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots of run %s: %w", runID, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.HasSuffix(name, snapshotExt) && !strings.Contains(name, "/") {
			names = append(names, strings.TrimSuffix(name, snapshotExt))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Restore replaces dst with the snapshot of file taken by run.
func (m *Mirror) Restore(ctx context.Context, runID, file, dst string) error {
	key := path.Join(m.prefix, runID, file+snapshotExt)
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to download snapshot %s: %w", key, err)
	}
	defer obj.Close()

	dec, err := zstd.NewReader(obj)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	defer dec.Close()

	if err := atomic.WriteFile(dst, dec); err != nil {
		return fmt.Errorf("failed to restore %s from %s: %w", dst, key, err)
	}
	m.logger.Info("Snapshot restored", zap.String("key", key), zap.String("path", dst))
	return nil
}
