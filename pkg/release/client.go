// pkg/release/client.go
package release

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arc-language/slangdroid/pkg/android"
	"github.com/arc-language/slangdroid/pkg/manifest"
)

// DefaultBaseURL is where GitHub serves release assets
const DefaultBaseURL = "https://github.com"

// Config configures the release client
type Config struct {
	Repo      string // owner/name hosting the releases
	BaseURL   string
	CachePath string
	Timeout   time.Duration
	Logger    *log.Logger
}

// Client downloads prebuilt artifacts from a release page
type Client struct {
	httpClient *http.Client
	config     *Config
	logger     *log.Logger
}

// NewClient creates a release client
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(os.TempDir(), "slangdroid")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		logger:     logger,
	}
}

// FetchOptions selects the asset to download
type FetchOptions struct {
	Tag    string
	ABI    android.ABI
	Format Format
	Dest   string
}

// AssetURL returns the download URL of a named asset
func (c *Client) AssetURL(tag, name string) string {
	return fmt.Sprintf("%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.config.BaseURL, "/"), c.config.Repo, tag, name)
}

// Fetch downloads the asset for opts.ABI, verifies it against the release's
// SHA256SUMS when one is published, and extracts it into opts.Dest
func (c *Client) Fetch(ctx context.Context, opts FetchOptions) (string, error) {
	if c.config.Repo == "" {
		return "", fmt.Errorf("release repository is required")
	}
	if opts.Format == "" {
		opts.Format = FormatXZ
	}

	name := AssetName(opts.Tag, opts.ABI, opts.Format)
	path := filepath.Join(c.config.CachePath, "downloads", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = c.DownloadFile(ctx, c.AssetURL(opts.Tag, name), f)
	f.Close()
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}

	if err := c.verify(ctx, opts.Tag, name, path); err != nil {
		os.Remove(path)
		return "", err
	}

	c.logger.Printf("Extracting %s to %s", name, opts.Dest)
	if err := extractInto(path, opts.Dest); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("extracting %s: %w", name, err)
	}
	return path, nil
}

// extractInto unpacks src into a staging directory beside dest and only
// moves the result into dest once extraction has succeeded
func extractInto(src, dest string) error {
	dest = filepath.Clean(dest)
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return err
	}

	staging, err := os.MkdirTemp(parent, ".slangdroid-extract-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)

	if err := Extract(src, staging); err != nil {
		return err
	}

	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return os.Rename(staging, dest)
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		return err
	}
	for _, e := range entries {
		target := filepath.Join(dest, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(staging, e.Name()), target); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) verify(ctx context.Context, tag, name, path string) error {
	var buf bytes.Buffer
	if err := c.DownloadFile(ctx, c.AssetURL(tag, ChecksumsFile), &buf); err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.logger.Printf("No %s for %s, skipping verification", ChecksumsFile, tag)
			return nil
		}
		return fmt.Errorf("fetching %s: %w", ChecksumsFile, err)
	}

	sums, err := ParseChecksums(&buf)
	if err != nil {
		return err
	}
	expected, ok := sums[name]
	if !ok {
		c.logger.Printf("%s does not list %s, skipping verification", ChecksumsFile, name)
		return nil
	}

	actual, _, err := manifest.HashFile(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: %s expected %s, got %s", ErrHashMismatch, name, expected, actual)
	}
	c.logger.Printf("Verified %s", name)
	return nil
}

// DownloadFile streams url into w
func (c *Client) DownloadFile(ctx context.Context, url string, w io.Writer) error {
	c.logger.Printf("[Release] Downloading File: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %d", resp.StatusCode)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}
