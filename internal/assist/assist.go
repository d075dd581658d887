// Package assist runs text-transform operations (summarize, fix grammar,
// rewrite) off the owning loop. Each operation gets its own worker
// goroutine and delivers its result through the dispatch bridge; the
// concrete backend sits behind the Provider interface, so the core never
// speaks to a network API directly.
package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slatepad/slate/internal/dispatch"
	"github.com/slatepad/slate/internal/log"
)

// Prompt is a named transform template. {text} is replaced with the
// selected text.
type Prompt struct {
	Name     string
	Template string
}

// Prompts are the built-in transforms, in menu order.
var Prompts = []Prompt{
	{"Summarize", "Summarize this text concisely:\n\n{text}"},
	{"Fix Grammar", "Fix grammar and spelling errors:\n\n{text}"},
	{"Professional Email", "Rewrite as a professional email:\n\n{text}"},
	{"Simplify", "Simplify this text for clarity:\n\n{text}"},
	{"Expand", "Expand with more detail:\n\n{text}"},
	{"Explain Code", "Explain what this code does:\n\n{text}"},
	{"Refactor Code", "Refactor this code for clarity and efficiency:\n\n{text}"},
	{"Add Comments", "Add helpful comments to this code:\n\n{text}"},
	{"Convert to Bullet Points", "Convert to bullet points:\n\n{text}"},
}

// Provider produces a transformed text for a prompt. Implementations run
// on a worker goroutine and may block; they are responsible for their own
// timeout.
type Provider interface {
	Transform(ctx context.Context, prompt string) (string, error)
}

// Callback receives the result on the owning loop. The document, selection
// or tab the request was made for may be gone by the time it runs; check
// before applying the result.
type Callback func(result string, err error)

// Manager dispatches transform requests to the provider.
type Manager struct {
	provider Provider
	bridge   *dispatch.Bridge
	timeout  time.Duration
}

// NewManager creates a manager. provider may be nil, in which case every
// request fails immediately.
func NewManager(provider Provider, bridge *dispatch.Bridge, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Manager{provider: provider, bridge: bridge, timeout: timeout}
}

// Process transforms text with a named prompt, delivering to done via the
// bridge. Once started the operation runs to completion; callers that lose
// interest discard the result inside done.
func (m *Manager) Process(text, promptName string, done Callback) {
	var template string
	for _, p := range Prompts {
		if p.Name == promptName {
			template = p.Template
			break
		}
	}
	if template == "" {
		m.bridge.Post(func() { done("", fmt.Errorf("unknown prompt %q", promptName)) })
		return
	}
	m.run(strings.ReplaceAll(template, "{text}", text), done)
}

// ProcessCustom transforms text with a free-form prompt.
func (m *Manager) ProcessCustom(text, prompt string, done Callback) {
	full := prompt
	if text != "" {
		full = prompt + "\n\n" + text
	}
	m.run(full, done)
}

func (m *Manager) run(prompt string, done Callback) {
	if m.provider == nil {
		m.bridge.Post(func() { done("", fmt.Errorf("no assist provider configured")) })
		return
	}

	started := time.Now()
	dispatch.RunAsync(m.bridge, func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return m.provider.Transform(ctx, prompt)
	}, func(result string, err error) {
		if err != nil {
			log.ErrorErr(log.CatAssist, "assist failed", err, "took", time.Since(started))
		} else {
			log.Debug(log.CatAssist, "assist complete", "took", time.Since(started))
		}
		done(result, err)
	})
}
