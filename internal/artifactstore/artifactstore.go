// Package artifactstore fetches missing model artifacts from a remote
// object-storage bucket into their expected local paths before loading.
package artifactstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
)

// EnsureLocal downloads each path that does not exist locally from the
// configured GCS bucket, using the file's base name as the object name. A
// fetch failure is returned to the caller, which degrades to the
// missing-artifact state instead of crashing the process. An empty bucket
// disables fetching entirely.
func EnsureLocal(ctx context.Context, bucket string, paths ...string) error {
	if bucket == "" {
		return nil
	}

	var missing []string
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			missing = append(missing, path)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	for _, path := range missing {
		object := filepath.Base(path)
		if err := download(ctx, client, bucket, object, path); err != nil {
			return fmt.Errorf("download gs://%s/%s: %w", bucket, object, err)
		}
		log.Infof("Fetched artifact gs://%s/%s -> %s", bucket, object, path)
	}
	return nil
}

func download(ctx context.Context, client *storage.Client, bucket, object, dest string) error {
	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, rc); err != nil {
		f.Close()
		os.Remove(dest)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}
