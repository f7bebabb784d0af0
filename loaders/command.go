package loaders

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/boolean-maybe/naviri/config"
	"github.com/boolean-maybe/naviri/naviri"
)

// ErrNoTemplate is returned when the command table has no usable entry.
var ErrNoTemplate = errors.New("no documentation command configured")

// Command implements naviri.Runner by running a command template through the shell.
type Command struct {
	// Template is the command line; config.TopicPlaceholder marks the topic.
	Template string

	// Shell runs the command line, which is appended as the last argument.
	// If empty, "sh -c" is used ("cmd /C" on Windows).
	Shell []string
}

var _ naviri.Runner = (*Command)(nil)

// NewCommand picks the template for this platform from settings.
func NewCommand(settings config.Settings) (*Command, error) {
	tmpl := settings.CommandTemplate(config.Platform())
	if strings.TrimSpace(tmpl) == "" {
		return nil, ErrNoTemplate
	}
	return &Command{Template: tmpl}, nil
}

// CommandLine returns the command line that runs for topic.
// The topic is quoted here, so quotes around the placeholder in older
// templates such as `qri -f ansi "%s"` are dropped.
func (c *Command) CommandLine(topic string) string {
	quoted := shellQuote(topic)
	if runtime.GOOS == "windows" {
		quoted = `"` + strings.ReplaceAll(topic, `"`, `""`) + `"`
	}
	return strings.NewReplacer(
		`"`+config.TopicPlaceholder+`"`, quoted,
		`'`+config.TopicPlaceholder+`'`, quoted,
		config.TopicPlaceholder, quoted,
	).Replace(c.Template)
}

// Run executes the command for topic and collects its combined output.
// A non-zero exit is reported in the result, not as an error.
func (c *Command) Run(ctx context.Context, topic string) (naviri.RunResult, error) {
	line := c.CommandLine(topic)
	res := naviri.RunResult{CommandLine: line}

	shell := c.Shell
	if len(shell) == 0 {
		shell = defaultShell()
	}
	args := append(append([]string(nil), shell[1:]...), line)
	cmd := exec.CommandContext(ctx, shell[0], args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	res.Output = out.String()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("run %q: %w", line, err)
	}
	return res, nil
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// shellQuote quotes s for a POSIX shell when it contains anything special.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$&;|*?<>`()[]{}#~!=%") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
