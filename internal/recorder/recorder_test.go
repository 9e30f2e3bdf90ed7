//go:build unix

package recorder

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagrec/internal/ros"
)

// testConfig runs a shell that sleeps for the first "topic" (in seconds),
// ignoring the injected output flag and name ($1 and $2).
func testConfig() ros.Config {
	return ros.Config{
		RecordCommand:       []string{"sh", "-c", `sleep "$3"`, "rec"},
		OutputFlag:          "-O",
		TimestampLayout:     "150405",
		DefaultNameTemplate: "{timestamp}-{index}",
	}
}

func TestRunRewritesOutputNamePerGroup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BAGREC_TEST_DIR", dir)

	cfg := testConfig()
	// Each child dumps its argv into a file named after its output name.
	cfg.RecordCommand = []string{"sh", "-c", `printf '%s\n' "$@" > "$BAGREC_TEST_DIR/$2"`, "rec"}
	o := New(cfg, time.Second, nil)

	groups := []Group{
		{Index: 1, Topics: []string{"/a", "/c"}},
		{Index: 2, Topics: []string{"/b"}},
	}
	err := o.Run(context.Background(), groups, []string{"-O", "run", "--split"})
	require.NoError(t, err)

	argv1, err := os.ReadFile(dir + "/run-1")
	require.NoError(t, err)
	assert.Equal(t, "-O\nrun-1\n/a\n/c\n--split\n", string(argv1))

	argv2, err := os.ReadFile(dir + "/run-2")
	require.NoError(t, err)
	assert.Equal(t, "-O\nrun-2\n/b\n--split\n", string(argv2))
}

func TestRunEmptyGroupsIsNoOp(t *testing.T) {
	o := New(testConfig(), time.Second, nil)

	start := time.Now()
	err := o.Run(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRunWaitsForChildren(t *testing.T) {
	o := New(testConfig(), time.Second, nil)
	groups := []Group{
		{Index: 1, Topics: []string{"0.1"}},
		{Index: 2, Topics: []string{"0.1"}},
	}

	err := o.Run(context.Background(), groups, nil)

	require.NoError(t, err)
	for _, c := range o.children {
		assert.True(t, c.exited())
	}
}

func TestRunChildFailureIsNotAnError(t *testing.T) {
	cfg := testConfig()
	cfg.RecordCommand = []string{"sh", "-c", "exit 3", "rec"}
	o := New(cfg, time.Second, nil)

	err := o.Run(context.Background(), []Group{{Index: 1, Topics: []string{"/a"}}}, nil)

	require.NoError(t, err, "a child's nonzero exit status is its own business")
}

func TestRunSpawnFailureIsNonFatal(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	cfg := testConfig()
	cfg.RecordCommand = []string{"/nonexistent/bagrec-test-binary"}
	o := New(cfg, time.Second, logger)

	groups := []Group{
		{Index: 1, Topics: []string{"/a"}},
		{Index: 2, Topics: []string{"/b"}},
	}
	err := o.Run(context.Background(), groups, nil)

	require.NoError(t, err)
	assert.Empty(t, o.children)
	assert.Equal(t, 2, strings.Count(logBuf.String(), "failed to start recorder"))
}

func TestCancelStopsRunningChildren(t *testing.T) {
	o := New(testConfig(), time.Second, nil)
	groups := []Group{
		{Index: 1, Topics: []string{"30"}},
		{Index: 2, Topics: []string{"30"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx, groups, nil) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete after cancellation")
	}
	for _, c := range o.children {
		assert.True(t, c.exited())
	}
}

func TestCancelSkipsExitedChildren(t *testing.T) {
	o := New(testConfig(), time.Second, nil)
	groups := []Group{
		{Index: 1, Topics: []string{"0.1"}}, // exits on its own
		{Index: 2, Topics: []string{"30"}},  // needs the interrupt
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx, groups, nil) }()

	// Let the first child finish before cancelling.
	time.Sleep(500 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete after cancellation")
	}
}

func TestEscalationKillsUnresponsiveChild(t *testing.T) {
	cfg := testConfig()
	// Shell that shrugs off INT and TERM; only SIGKILL ends it.
	cfg.RecordCommand = []string{"sh", "-c", `trap "" INT TERM; while :; do sleep 1; done`, "rec"}
	o := New(cfg, 200*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Run(ctx, []Group{{Index: 1, Topics: []string{"/a"}}}, nil) }()

	time.Sleep(200 * time.Millisecond)
	start := time.Now()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("kill tier never fired")
	}
	// Two grace periods (interrupt wait + terminate wait) before the kill.
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}

func TestSignalingVanishedProcessIsFine(t *testing.T) {
	// A pid that has certainly been reaped by now.
	cfg := testConfig()
	cfg.RecordCommand = []string{"sh", "-c", "exit 0", "rec"}
	o := New(cfg, time.Second, nil)
	require.NoError(t, o.Run(context.Background(), []Group{{Index: 1, Topics: []string{"/a"}}}, nil))

	pid := o.children[0].cmd.Process.Pid
	assert.NoError(t, interrupt(pid))
	assert.NoError(t, terminate(pid))
	assert.NoError(t, kill(pid))
}
