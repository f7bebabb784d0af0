package naviri

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is how many topics the cache keeps.
const DefaultCacheSize = 20

// ErrNilRunner is returned by NewCache when no runner is given.
var ErrNilRunner = errors.New("nil runner")

// RunResult is the outcome of one run of the documentation command.
type RunResult struct {
	// CommandLine is the exact command that was run, for diagnostics.
	CommandLine string
	// Output is the combined stdout and stderr.
	Output string
	// ExitCode is the command's exit status.
	ExitCode int
}

// Runner runs the external documentation command for a topic.
// A non-nil error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, topic string) (RunResult, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, topic string) (RunResult, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, topic string) (RunResult, error) { return f(ctx, topic) }

// Cache memoizes successful runs of the documentation command.
//
// Eviction is first-in first-out: reads never refresh an entry, so the
// topic fetched longest ago goes first once the cache is full. Failed runs
// are never stored and are retried on the next fetch.
type Cache struct {
	runner  Runner
	entries *lru.Cache[string, string]

	// hint names where the command table can be edited.
	hint string

	mu sync.Mutex
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	Size int
	// ConfigHint is shown in failure diagnostics, e.g. the rc file path.
	ConfigHint string
}

// NewCache creates a cache in front of runner.
func NewCache(runner Runner, opts CacheOptions) (*Cache, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.NewWithEvict(size, func(topic string, _ string) {
		slog.Debug("Evicted topic from cache", "topic", topic)
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache{runner: runner, entries: entries, hint: opts.ConfigHint}, nil
}

// Fetch returns the documentation text for topic, running the command on a miss.
//
// Command failures are not errors: the diagnostic is appended to whatever the
// command printed and returned as the text. The only error is ctx's.
func (c *Cache) Fetch(ctx context.Context, topic string) (string, error) {
	// Peek, not Get: a hit must not move the topic to the back of the queue.
	if text, ok := c.entries.Peek(topic); ok {
		slog.Debug("Cache hit", "topic", topic)
		return reflowChoices(text), nil
	}

	started := time.Now()
	res, err := c.runner.Run(ctx, topic)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		slog.Warn("Failed to start documentation command", "topic", topic, "error", err)
		res.ExitCode = -1
		if res.Output == "" {
			res.Output = err.Error()
		}
	}
	slog.Debug("Ran documentation command",
		"topic", topic,
		"command", res.CommandLine,
		"exit_code", res.ExitCode,
		"duration", time.Since(started),
		"output", ansi.Truncate(ansi.Strip(res.Output), 80, "…"))

	text := res.Output
	if res.ExitCode != 0 {
		text += "\n" + c.diagnostic(res)
		return reflowChoices(text), nil
	}

	if text == "nil\n" {
		text = fmt.Sprintf("Topic %q not found.", topic)
	}
	c.store(topic, text)
	return reflowChoices(text), nil
}

func (c *Cache) store(topic, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// two tabs may have raced to fetch the same topic; keep the first insertion.
	if c.entries.Contains(topic) {
		return
	}
	c.entries.Add(topic, text)
}

func (c *Cache) diagnostic(res RunResult) string {
	msg := fmt.Sprintf("ERROR: Failed to run the command '%s' (exit code: %d). "+
		"Please make sure you have this command in your PATH.", res.CommandLine, res.ExitCode)
	hint := c.hint
	if hint == "" {
		hint = "your rc file"
	}
	return msg + fmt.Sprintf("\n\nYou may wish to edit the 'command' table in %s "+
		"to use a command that works on your system.", hint)
}

// Contains reports whether topic is cached.
func (c *Cache) Contains(topic string) bool { return c.entries.Contains(topic) }

// Len returns the number of cached topics.
func (c *Cache) Len() int { return c.entries.Len() }

var leadingSpaces = regexp.MustCompile(`(?m)^ +`)

// choiceIndent sets the choices of an ambiguous topic apart from the header,
// so the header is not taken for a section when a choice is clicked.
const choiceIndent = "     "

// reflowChoices puts each choice of ri's "Multiple choices" answer on its own line.
func reflowChoices(text string) string {
	if !strings.Contains(text, "Multiple choices") {
		return text
	}
	text = strings.ReplaceAll(text, ", ", "\n")
	text = leadingSpaces.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, "\n", "\n"+choiceIndent)
}
