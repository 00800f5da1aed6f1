package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const userAgent = "Nexus-Go/0.1.0"

// Pusher sends change summaries out of process. The watch daemon uses it so
// people away from a workstation still hear about movement on the board.
type Pusher interface {
	NotifyChanges(ctx context.Context, folders map[string]bool) error
	NotifyError(ctx context.Context, err error, operation string) error
	Test(ctx context.Context) error
}

// NewPusher builds a pusher backed by ntfy when a topic is configured.
// Without a topic, a noop implementation is returned.
func NewPusher(topic string, timeout time.Duration) Pusher {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopPusher{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyPusher{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyPusher struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyPusher) NotifyChanges(ctx context.Context, folders map[string]bool) error {
	changed := make([]string, 0, len(folders))
	for folder, isChanged := range folders {
		if isChanged {
			changed = append(changed, folder)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	sort.Strings(changed)

	data := payload{
		title:   "Nexus - Pendências atualizadas",
		message: fmt.Sprintf("Mudanças detectadas em: %s", strings.Join(changed, ", ")),
		tags:    []string{"nexus", "pendencias", "changed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyPusher) NotifyError(ctx context.Context, err error, operation string) error {
	operation = strings.TrimSpace(operation)
	if operation == "" {
		operation = "operação"
	}
	data := payload{
		title:    "Nexus - Erro",
		message:  fmt.Sprintf("Falha em %s: %v", operation, err),
		tags:     []string{"nexus", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyPusher) Test(ctx context.Context) error {
	data := payload{
		title:   "Nexus - Teste",
		message: "Notificações configuradas corretamente.",
		tags:    []string{"nexus", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyPusher) send(ctx context.Context, data payload) error {
	endpoint := n.endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://ntfy.sh/" + endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Title", data.title)
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification rejected: %s", resp.Status)
	}
	return nil
}

type noopPusher struct{}

func (noopPusher) NotifyChanges(context.Context, map[string]bool) error { return nil }

func (noopPusher) NotifyError(context.Context, error, string) error { return nil }

func (noopPusher) Test(context.Context) error { return nil }
