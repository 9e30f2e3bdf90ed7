// bagmerge merges the per-group ROS 2 bag directories produced by bagrec
// back into a single bag via `ros2 bag convert`.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var bagIndexPattern = regexp.MustCompile(`^(.+)-(\d+)$`)

type outputBag struct {
	URI string `yaml:"uri"`
}

type mergeOptions struct {
	OutputBags []outputBag `yaml:"output_bags"`
}

func main() {
	var optionsPath string

	cmd := &cobra.Command{
		Use:   "bagmerge <bag-path>",
		Short: "Merge grouped bag recordings into one",
		Long: `Merge the ROS 2 bag directories recorded per group back into one bag.

<bag-path> is the base bag path without the -<N> group suffix; every
sibling directory named <bag-path>-<N> is fed to ros2 bag convert in
ascending group order.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return merge(args[0], optionsPath)
		},
	}
	cmd.Flags().StringVar(&optionsPath, "options", "",
		"path to a ros2 bag convert output options YAML (generated when omitted)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func merge(bagPath, optionsPath string) error {
	base := filepath.Base(bagPath)

	parts, err := findParts(filepath.Dir(bagPath), base)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no bag directories found for base name: %s", base)
	}

	if optionsPath == "" {
		optionsPath, err = writeOptionsFile(bagPath)
		if err != nil {
			return err
		}
	}

	args := []string{"bag", "convert"}
	for _, p := range parts {
		args = append(args, "-i", p)
	}
	args = append(args, "-o", optionsPath)

	convert := exec.Command("ros2", args...)
	convert.Stdout = os.Stdout
	convert.Stderr = os.Stderr
	return convert.Run()
}

// findParts returns the directories under dir named <base>-<N>, ordered
// by ascending N.
func findParts(dir, base string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	type part struct {
		index int
		path  string
	}
	var parts []part
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := bagIndexPattern.FindStringSubmatch(e.Name())
		if m == nil || m[1] != base {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		parts = append(parts, part{index: n, path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].index < parts[j].index })

	paths := make([]string, len(parts))
	for i, p := range parts {
		paths[i] = p.path
	}
	return paths, nil
}

// writeOptionsFile generates the convert output options YAML into a temp
// file and returns its path.
func writeOptionsFile(bagPath string) (string, error) {
	dir := filepath.Join(os.TempDir(), "bagrec")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating options dir: %w", err)
	}

	var suffix [8]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "merge_options_"+hex.EncodeToString(suffix[:])+".yaml")

	data, err := yaml.Marshal(mergeOptions{OutputBags: []outputBag{{URI: bagPath}}})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing options file: %w", err)
	}
	return path, nil
}
