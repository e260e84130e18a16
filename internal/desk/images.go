package desk

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageBytes bounds a single upload; data URIs live inside the
// equipment collection, so large images would exhaust the store quota.
const MaxImageBytes = 5 << 20

// MediaFile is one file selected for upload.
type MediaFile struct {
	Name   string
	Reader io.Reader
}

// UploadResult is the outcome of one file in a batch.
type UploadResult struct {
	Name    string
	DataURI string
	Err     error
}

// UploadImage converts an image into a self-contained data URI. It waits for
// the upload latency, which is longer than other operations.
func (r *EquipmentRepository) UploadImage(ctx context.Context, file MediaFile) (string, error) {
	if err := sleep(ctx, r.latency.Upload); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, MaxImageBytes+1))
	if err != nil {
		return "", &MediaReadError{Name: file.Name, Err: err}
	}
	if len(data) == 0 {
		return "", &MediaReadError{Name: file.Name, Err: fmt.Errorf("file is empty")}
	}
	if len(data) > MaxImageBytes {
		return "", &MediaReadError{Name: file.Name, Err: fmt.Errorf("file exceeds %d bytes", MaxImageBytes)}
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", &MediaReadError{Name: file.Name, Err: fmt.Errorf("not an image: %s", mime.String())}
	}

	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// UploadImages converts every file concurrently. Each result is independent:
// a failing file does not stop the others. Results keep the input order.
func (r *EquipmentRepository) UploadImages(ctx context.Context, files []MediaFile) []UploadResult {
	results := make([]UploadResult, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f MediaFile) {
			defer wg.Done()
			uri, err := r.UploadImage(ctx, f)
			results[i] = UploadResult{Name: f.Name, DataURI: uri, Err: err}
			if err != nil {
				r.logger.Warn("image upload failed", "name", f.Name, "error", err)
			}
		}(i, f)
	}
	wg.Wait()

	return results
}
