// Package notify serializes out-of-band status events into the private-use
// terminal escape channel shared with raw pty output.
//
// Wire format: ESC ] 777 ; <json> BEL. The client unwraps channel 777
// payloads before rendering; everything else on the stream is terminal data.
package notify

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

const (
	introducer = "\x1b]777;"
	terminator = "\x07"
)

// flusher is satisfied by bufio.Writer; flat os.File writes need no flush.
type flusher interface {
	Flush() error
}

// message is the fixed payload envelope for all notification shapes.
type message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type agentStatusData struct {
	Active    bool    `json:"active"`
	AgentType *string `json:"agent_type"`
}

type foregroundData struct {
	Name string `json:"name"`
}

// Notifier writes status notifications to the client output stream.
type Notifier struct {
	w io.Writer
}

// NewNotifier creates a notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// AgentStatus emits a cli_agent_status notification.
// agentType must be empty when active is false; it is encoded as JSON null.
func (n *Notifier) AgentStatus(active bool, agentType string) error {
	data := agentStatusData{Active: active}
	if agentType != "" {
		data.AgentType = &agentType
	}
	return n.send(message{Type: "cli_agent_status", Data: data})
}

// ForegroundProcess emits a foreground_process notification.
func (n *Notifier) ForegroundProcess(name string) error {
	return n.send(message{Type: "foreground_process", Data: foregroundData{Name: name}})
}

func (n *Notifier) send(msg message) error {
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	if _, err := n.w.Write([]byte(introducer)); err != nil {
		return err
	}
	if _, err := n.w.Write(payload); err != nil {
		return err
	}
	if _, err := n.w.Write([]byte(terminator)); err != nil {
		return err
	}

	if f, ok := n.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
