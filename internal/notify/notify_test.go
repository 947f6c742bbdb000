package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unwrap strips the OSC 777 envelope and returns the JSON body.
func unwrap(t *testing.T, raw string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(raw, "\x1b]777;"), "missing introducer: %q", raw)
	require.True(t, strings.HasSuffix(raw, "\x07"), "missing terminator: %q", raw)
	return strings.TrimSuffix(strings.TrimPrefix(raw, "\x1b]777;"), "\x07")
}

func TestAgentStatusActive(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	require.NoError(t, n.AgentStatus(true, "claude"))

	body := unwrap(t, buf.String())

	var msg struct {
		Type string `json:"type"`
		Data struct {
			Active    bool    `json:"active"`
			AgentType *string `json:"agent_type"`
		} `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &msg))

	assert.Equal(t, "cli_agent_status", msg.Type)
	assert.True(t, msg.Data.Active)
	require.NotNil(t, msg.Data.AgentType)
	assert.Equal(t, "claude", *msg.Data.AgentType)
}

func TestAgentStatusInactiveEncodesNull(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	require.NoError(t, n.AgentStatus(false, ""))

	body := unwrap(t, buf.String())
	assert.Contains(t, body, `"agent_type":null`)
	assert.Contains(t, body, `"active":false`)
}

func TestForegroundProcess(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	require.NoError(t, n.ForegroundProcess("vim"))

	body := unwrap(t, buf.String())

	var msg struct {
		Type string `json:"type"`
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &msg))

	assert.Equal(t, "foreground_process", msg.Type)
	assert.Equal(t, "vim", msg.Data.Name)
}

func TestNotificationsConcatenate(t *testing.T) {
	// Two notifications on one stream must produce two complete envelopes.
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	require.NoError(t, n.AgentStatus(true, "codex"))
	require.NoError(t, n.ForegroundProcess("codex"))

	parts := strings.SplitAfter(buf.String(), "\x07")
	assert.Len(t, parts, 3) // two envelopes plus trailing empty split
	assert.True(t, strings.HasPrefix(parts[0], "\x1b]777;"))
	assert.True(t, strings.HasPrefix(parts[1], "\x1b]777;"))
}
