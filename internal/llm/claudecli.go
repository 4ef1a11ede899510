package llm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ClaudeCLIBackend shells out to the claude CLI tool. No API key handling
// of its own — the CLI carries its own auth. The CLI prints a JSON
// envelope ({"result": "..."}); unwrapping is the response parser's job,
// so stdout is returned as-is.
type ClaudeCLIBackend struct {
	bin     string
	model   string
	timeout time.Duration
}

// NewClaudeCLIBackend creates a new claude CLI backend.
func NewClaudeCLIBackend(cfg ClaudeCLIConfig) *ClaudeCLIBackend {
	bin := cfg.Bin
	if bin == "" {
		bin = "claude"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClaudeCLIBackend{
		bin:     bin,
		model:   cfg.Model,
		timeout: timeout,
	}
}

func (b *ClaudeCLIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := []string{"-p", prompt, "--output-format", "json"}
	if b.model != "" {
		args = append(args, "--model", b.model)
	}

	cmd := exec.CommandContext(ctx, b.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &ErrBackendUnavailable{
				Err: fmt.Errorf("%s timed out after %s", b.bin, b.timeout),
			}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", &ErrBackendUnavailable{Err: fmt.Errorf("%s: %w: %s", b.bin, err, msg)}
		}
		return "", &ErrBackendUnavailable{Err: fmt.Errorf("%s: %w", b.bin, err)}
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", &ErrEmptyCompletion{}
	}
	return out, nil
}

func (b *ClaudeCLIBackend) ModelID() string {
	if b.model != "" {
		return b.model
	}
	return b.bin
}
