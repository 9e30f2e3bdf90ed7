package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"bagrec/internal/cache"
	"bagrec/internal/config"
	"bagrec/internal/logging"
	"bagrec/internal/recorder"
	"bagrec/internal/ros"
	"bagrec/internal/selector"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires the pipeline: list topics, pick interactively, record. The
// whole command line is passed through to the record command; only the
// output-name flag is intercepted and rewritten per group.
func run(passthrough []string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := logging.New(cfg.Log)

	rosCfg := ros.DetectConfig()
	source := ros.NewTopicSource(rosCfg, cfg.Recording.ExcludedTopics)
	topics, err := source.Topics(context.Background())
	if err != nil {
		if errors.Is(err, ros.ErrNoTopics) {
			fmt.Fprintln(os.Stderr, "No topics available to record")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	cachePath, seed := loadCache(logger)

	model, err := selector.New(topics, seed, cfg.UI)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "selector failed: %v\n", err)
		return 1
	}
	m := final.(selector.Model)
	if m.Outcome() != selector.OutcomeConfirmed {
		return 0
	}
	selections := m.Selections()
	if len(selections) == 0 {
		return 0
	}

	saveCache(logger, cachePath, selections)

	// From here Ctrl+C belongs to the shutdown protocol.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := recorder.New(rosCfg, cfg.GracePeriod(), logger)
	if err := orch.Run(ctx, recorder.Partition(selections), passthrough); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadCache returns the cache path for the current directory and the
// remembered selection. Cache trouble never blocks a recording run.
func loadCache(logger *slog.Logger) (string, map[string]int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil
	}
	path, err := cache.PathFor(cwd)
	if err != nil {
		logger.Warn("cache unavailable", "error", err)
		return "", nil
	}
	seed, err := cache.Load(path)
	if err != nil {
		logger.Warn("ignoring unreadable cache", "path", path, "error", err)
		return path, nil
	}
	return path, seed
}

func saveCache(logger *slog.Logger, path string, selections []selector.Selection) {
	if path == "" {
		return
	}
	entries := make([]cache.Entry, len(selections))
	for i, s := range selections {
		entries[i] = cache.Entry{Label: s.Label, GroupIndex: s.GroupIndex}
	}
	if err := cache.Save(path, entries); err != nil {
		logger.Warn("failed to save selection cache", "path", path, "error", err)
	}
}
