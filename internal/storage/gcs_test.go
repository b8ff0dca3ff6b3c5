package storage

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestParseGCSURI(t *testing.T) {
	bucket, object, err := parseGCSURI("gs://pitchgraph-output/runs/abc123.json")

	assert.Equal(t, nil, err)
	assert.Equal(t, "pitchgraph-output", bucket)
	assert.Equal(t, "runs/abc123.json", object)
}

func TestParseGCSURIRejects(t *testing.T) {
	invalid := []string{
		"s3://bucket/file.json",
		"gs://bucket-only",
		"gs:///no-bucket.json",
		"bucket/file.json",
		"",
	}

	for _, uri := range invalid {
		if _, _, err := parseGCSURI(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}
