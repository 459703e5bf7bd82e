package firefox

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// placesFile is the history store inside a Firefox profile directory.
const placesFile = "places.sqlite"

// profileRoot returns the platform-specific directory that contains Firefox
// profiles.
func profileRoot() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Mozilla", "Firefox", "Profiles")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".mozilla", "firefox")
	}
}

// findProfile scans root for profile directories containing places.sqlite and
// returns the one whose store file was modified most recently. Ties are
// broken by lexicographically smallest directory name so discovery is
// reproducible. Returns "" when no candidate exists.
func findProfile(root string) string {
	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}

	type candidate struct {
		path    string
		modTime int64
	}

	var candidates []candidate
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		profileDir := filepath.Join(root, de.Name())
		info, err := os.Stat(filepath.Join(profileDir, placesFile))
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{path: profileDir, modTime: info.ModTime().UnixNano()})
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path < candidates[j].path
	})

	return candidates[0].path
}
