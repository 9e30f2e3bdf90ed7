// Package recorder launches one detached bag-record process per recording
// group and supervises them until they exit or the operator cancels.
package recorder

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"bagrec/internal/ros"
	"bagrec/internal/selector"
)

const defaultGracePeriod = 5 * time.Second

// Group is one recording unit: the topics that share a child process.
type Group struct {
	Index  int
	Topics []string
}

// Partition splits confirmed selections into recording groups, ordered by
// ascending group index. Topic order within a group follows the original
// selection order.
func Partition(sels []selector.Selection) []Group {
	byIndex := make(map[int][]string)
	for _, s := range sels {
		byIndex[s.GroupIndex] = append(byIndex[s.GroupIndex], s.Label)
	}
	indices := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	groups := make([]Group, 0, len(indices))
	for _, i := range indices {
		groups = append(groups, Group{Index: i, Topics: byIndex[i]})
	}
	return groups
}

// child is one launched record process. done closes once the wait
// goroutine has reaped it; waitErr is only valid after that.
type child struct {
	group   Group
	output  string
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func (c *child) exited() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Orchestrator owns the child processes for one recording run.
type Orchestrator struct {
	cfg      ros.Config
	grace    time.Duration
	logger   *slog.Logger
	children []*child
}

// New creates an orchestrator. grace is the timeout of each shutdown
// escalation tier; zero or negative selects the default of 5s.
func New(cfg ros.Config, grace time.Duration, logger *slog.Logger) *Orchestrator {
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{cfg: cfg, grace: grace, logger: logger}
}

// Run launches one record process per group in ascending index order and
// waits for all of them in launch order. Cancelling ctx triggers the
// graceful shutdown ladder. Empty input returns immediately. A spawn
// failure only loses that group; the others are still launched and
// supervised. A child's own nonzero exit status is not an error here.
func (o *Orchestrator) Run(ctx context.Context, groups []Group, passthrough []string) error {
	if len(groups) == 0 {
		return nil
	}

	userName, extra := ExtractOutputName(passthrough, o.cfg.OutputFlag)
	// One timestamp for the whole launch so default names only differ in
	// the group suffix.
	timestamp := time.Now().Format(o.cfg.TimestampLayout)

	for _, g := range groups {
		output := o.cfg.OutputName(userName, timestamp, g.Index)

		args := make([]string, 0, len(o.cfg.RecordCommand)+len(g.Topics)+len(extra)+1)
		args = append(args, o.cfg.RecordCommand[1:]...)
		args = append(args, o.cfg.OutputFlag, output)
		args = append(args, g.Topics...)
		args = append(args, extra...)

		cmd := exec.Command(o.cfg.RecordCommand[0], args...)
		// Children keep the terminal for their own diagnostics.
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		detach(cmd)

		if err := cmd.Start(); err != nil {
			o.logger.Warn("failed to start recorder",
				"group", g.Index, "output", output, "error", err)
			continue
		}

		c := &child{group: g, output: output, cmd: cmd, done: make(chan struct{})}
		go func() {
			c.waitErr = cmd.Wait()
			close(c.done)
		}()
		o.children = append(o.children, c)
		o.logger.Info("recording started",
			"group", g.Index, "output", output, "pid", cmd.Process.Pid)
	}

	for _, c := range o.children {
		select {
		case <-c.done:
			o.logger.Info("recording finished",
				"group", c.group.Index, "output", c.output, "result", exitLabel(c.waitErr))
		case <-ctx.Done():
			o.shutdown()
			return nil
		}
	}
	return nil
}

// shutdown runs the three-tier stop protocol. Every still-running child is
// sent a cooperative interrupt first, in launch order, so each child's
// escalation clock starts immediately; the waits then proceed per child
// concurrently and one stuck recorder cannot delay the others.
func (o *Orchestrator) shutdown() {
	var wg sync.WaitGroup
	for _, c := range o.children {
		if c.exited() {
			continue
		}
		if err := interrupt(c.cmd.Process.Pid); err != nil {
			o.logger.Warn("interrupt delivery failed",
				"group", c.group.Index, "error", err)
		}
		wg.Add(1)
		go func(c *child) {
			defer wg.Done()
			o.escalate(c)
		}(c)
	}
	wg.Wait()
}

// escalate waits one grace period after the cooperative interrupt, then
// terminates, waits another, then kills unconditionally.
func (o *Orchestrator) escalate(c *child) {
	pid := c.cmd.Process.Pid

	select {
	case <-c.done:
		return
	case <-time.After(o.grace):
	}
	o.logger.Warn("recorder did not stop, terminating", "group", c.group.Index, "pid", pid)
	if err := terminate(pid); err != nil {
		o.logger.Warn("terminate delivery failed", "group", c.group.Index, "error", err)
	}

	select {
	case <-c.done:
		return
	case <-time.After(o.grace):
	}
	o.logger.Warn("recorder still running, killing", "group", c.group.Index, "pid", pid)
	if err := kill(pid); err != nil {
		o.logger.Warn("kill delivery failed", "group", c.group.Index, "error", err)
	}
	<-c.done
}

func exitLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}
