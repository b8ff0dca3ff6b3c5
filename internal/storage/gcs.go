package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// GCSWriter copies finished responses to a gs:// destination when a request
// asks for one. Failures here are reported inside the response, they never
// fail the analysis itself.
type GCSWriter struct {
	client *storage.Client
}

func NewGCSWriter(ctx context.Context) (*GCSWriter, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSWriter{client: client}, nil
}

func (w *GCSWriter) WriteJSON(uri string, v interface{}) error {
	bucket, object, err := parseGCSURI(uri)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	ctx := context.Background()
	wc := w.client.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = "application/json"
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return fmt.Errorf("gcs write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("gcs write: %w", err)
	}
	return nil
}

func parseGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("destination must be in the form gs://bucket/path/file.json, got %q", uri)
	}

	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("destination must be in the form gs://bucket/path/file.json, got %q", uri)
	}
	return bucket, object, nil
}
