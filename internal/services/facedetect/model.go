package facedetect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
)

// EnsureModel downloads the detection model artifact to path if it is not
// already present. The download is retried a few times before giving up;
// a failure here surfaces as detector-init failure, which the Locator
// degrades to "no face".
func EnsureModel(ctx context.Context, path, url string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}

	return retry.Do(
		func() error {
			return download(ctx, client, path, url)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
}

func download(ctx context.Context, client *http.Client, path, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch model: %s", resp.Status)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write model file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close model file: %w", err)
	}

	return os.Rename(tmp, path)
}
