// Package version checks whether a newer reel release is available.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/util"
	"github.com/reel-cli/reel/where"
)

// ReleasesURL is queried for the latest published tag.
const ReleasesURL = "https://api.github.com/repos/reel-cli/reel/releases/latest"

const lookupTimeout = 3 * time.Second

var latestCache = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   48 * time.Hour,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version without the leading "v". Results are cached for
// two days.
func Latest(ctx context.Context) (string, error) {
	cached, expired, err := latestCache.Get()
	if err == nil && !expired && cached != "" {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query releases: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("query releases: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" {
		return "", errors.New("release has no tag")
	}

	_ = latestCache.Set(latest)
	return latest, nil
}
