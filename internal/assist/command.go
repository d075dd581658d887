package assist

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandProvider runs a local command with the prompt on stdin and reads
// the transformed text from stdout. It is the reference Provider; anything
// that can be invoked as a subprocess (an API CLI, a local model runner)
// plugs in through the config without the core knowing about it.
type CommandProvider struct {
	// Command is the argv to run, e.g. ["llm", "-m", "small"].
	Command []string
}

// Transform implements Provider.
func (p CommandProvider) Transform(ctx context.Context, prompt string) (string, error) {
	if len(p.Command) == 0 {
		return "", fmt.Errorf("assist command not configured")
	}

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...) //nolint:gosec // G204: command comes from the user's own config
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("assist command: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("assist command: %w", err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}
