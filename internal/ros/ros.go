package ros

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Errors reported by the topic source. Both are fatal for a recording run.
var (
	ErrNoTopics          = errors.New("no topics available to record")
	ErrTopicSourceFailed = errors.New("topic listing failed")
)

const (
	rosVersionEnv    = "ROS_VERSION"
	ros2VersionValue = "2"
)

// Config selects the ROS commands and output naming scheme for one
// distribution generation. TimestampLayout uses Go reference-time layout;
// DefaultNameTemplate understands {timestamp} and {index}.
type Config struct {
	TopicListCommand    []string
	RecordCommand       []string
	OutputFlag          string
	TimestampLayout     string
	DefaultNameTemplate string
}

var ros1Config = Config{
	TopicListCommand:    []string{"rostopic", "list"},
	RecordCommand:       []string{"rosbag", "record"},
	OutputFlag:          "-O",
	TimestampLayout:     "2006-01-02-15-04-05",
	DefaultNameTemplate: "{timestamp}-{index}.bag",
}

var ros2Config = Config{
	TopicListCommand:    []string{"ros2", "topic", "list"},
	RecordCommand:       []string{"ros2", "bag", "record"},
	OutputFlag:          "-o",
	TimestampLayout:     "2006_01_02-15_04_05",
	DefaultNameTemplate: "rosbag2_{timestamp}-{index}",
}

// DetectConfig picks the ROS 2 configuration when ROS_VERSION=2 is set,
// otherwise ROS 1.
func DetectConfig() Config {
	if os.Getenv(rosVersionEnv) == ros2VersionValue {
		return ros2Config
	}
	return ros1Config
}

// OutputName derives the bag name for one recording group. An explicit
// userName (from the intercepted output flag) wins; otherwise the default
// template is filled with the shared launch timestamp.
func (c Config) OutputName(userName, timestamp string, groupIndex int) string {
	if userName != "" {
		return fmt.Sprintf("%s-%d", userName, groupIndex)
	}
	r := strings.NewReplacer(
		"{timestamp}", timestamp,
		"{index}", strconv.Itoa(groupIndex),
	)
	return r.Replace(c.DefaultNameTemplate)
}

// TopicSource lists recordable topic names.
type TopicSource interface {
	Topics(ctx context.Context) ([]string, error)
}

// topicSource shells out to the distribution's topic list command.
type topicSource struct {
	command  []string
	excluded map[string]bool
}

// NewTopicSource creates a topic source running cfg's list command and
// dropping the given topic names from its output.
func NewTopicSource(cfg Config, excluded []string) TopicSource {
	ex := make(map[string]bool, len(excluded))
	for _, t := range excluded {
		ex[t] = true
	}
	return &topicSource{command: cfg.TopicListCommand, excluded: ex}
}

// Topics runs the list command and returns the filtered topic names in the
// order the command printed them. Any output on stderr is fatal, as is an
// empty result.
func (ts *topicSource) Topics(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, ts.command[0], ts.command[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTopicSourceFailed, strings.TrimSpace(stderr.String()))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTopicSourceFailed, err)
	}

	var topics []string
	for _, line := range strings.Split(strings.TrimRight(stdout.String(), "\r\n"), "\n") {
		topic := strings.TrimRight(line, "\r")
		if topic == "" || ts.excluded[topic] {
			continue
		}
		topics = append(topics, topic)
	}
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}
	return topics, nil
}
