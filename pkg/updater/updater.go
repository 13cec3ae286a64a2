// Package updater checks GitHub for a newer rv release.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/version"
)

// LatestReleaseURL is the GitHub API endpoint queried by CheckForUpdates.
const LatestReleaseURL = "https://api.github.com/repos/Dicklesworthstone/radius_viewer/releases/latest"

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// CheckForUpdates queries url (LatestReleaseURL when empty) for the latest
// release. It returns the new tag and its page if the release is newer than
// version.Version, and empty strings otherwise.
func CheckForUpdates(ctx context.Context, url string) (string, string, error) {
	if url == "" {
		url = LatestReleaseURL
	}
	// Short timeout so a slow network never blocks the command for long
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", "", fmt.Errorf("decode release: %w", err)
	}

	if compareVersions(rel.TagName, version.Version) > 0 {
		return rel.TagName, rel.HTMLURL, nil
	}
	return "", "", nil
}

// compareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal.
// Versions are dotted numbers with an optional "v" prefix; a pre-release
// suffix ("-rc1") sorts before the plain release.
func compareVersions(v1, v2 string) int {
	n1, pre1 := splitVersion(v1)
	n2, pre2 := splitVersion(v2)

	for i := 0; i < len(n1) || i < len(n2); i++ {
		var a, b int
		if i < len(n1) {
			a = n1[i]
		}
		if i < len(n2) {
			b = n2[i]
		}
		if a != b {
			if a > b {
				return 1
			}
			return -1
		}
	}

	switch {
	case pre1 == pre2:
		return 0
	case pre1 == "":
		return 1
	case pre2 == "":
		return -1
	case pre1 > pre2:
		return 1
	}
	return -1
}

func splitVersion(v string) ([]int, string) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	var pre string
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		pre = v[i+1:]
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		// Non-numeric segments count as 0
		nums[i], _ = strconv.Atoi(p)
	}
	return nums, pre
}
