// Package cache remembers the last confirmed topic selection per working
// directory so the next run can pre-check it. Records are advisory: the
// selector never trusts them beyond seeding its initial state.
package cache

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const appDirName = "bagrec"

// Entry is one remembered selection: a topic label and the recording group
// it was assigned to.
type Entry struct {
	Label      string
	GroupIndex int
}

// PathFor returns the cache file path for the given working directory.
// Each directory gets its own file, keyed by a hash of its absolute path.
func PathFor(workDir string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache dir: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	sum := md5.Sum([]byte(workDir))
	return filepath.Join(dir, fmt.Sprintf("%x.cache", sum)), nil
}

// Load reads the cache file and returns the remembered group index per
// label. A missing file means an empty selection. Each line holds
// "label<TAB>groupIndex"; a line without the separator or with a malformed
// integer means group 1. Labels are returned as-is — filtering against the
// currently available topics is the caller's job.
func Load(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	groups := make(map[string]int)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		label, rest, found := strings.Cut(line, "\t")
		group := 1
		if found {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && n >= 1 {
				group = n
			}
		}
		groups[label] = group
	}
	return groups, nil
}

// Save rewrites the cache file with the given entries, one per line, in
// the order given.
func Save(path string, entries []Entry) error {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%d\n", e.Label, e.GroupIndex)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
