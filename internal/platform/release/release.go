// Package release looks up the latest published version of the application.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ReleaseSource reports the latest released version.
type ReleaseSource interface {
	GetLatestVersion(ctx context.Context, releaseURL string) (string, error)
}

// HTTPSource reads a plain-text version from <releaseURL>/version.
type HTTPSource struct {
	Client *http.Client // defaults to a client with a 30s timeout
}

// maxVersionBody bounds the version response.
const maxVersionBody = 1 << 10

func (h *HTTPSource) GetLatestVersion(ctx context.Context, releaseURL string) (string, error) {
	if releaseURL == "" {
		return "", fmt.Errorf("no release URL configured")
	}
	versionURL := strings.TrimSuffix(releaseURL, "/") + "/version"

	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, versionURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBody))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	version := strings.TrimSpace(string(body))
	if version == "" {
		return "", fmt.Errorf("empty version response")
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", fmt.Errorf("invalid version %q", version)
	}
	return version, nil
}
