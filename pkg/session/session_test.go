package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xVc323/raspai/pkg/deploy"
	"github.com/xVc323/raspai/pkg/tui"
)

func TestHistoryEntry(t *testing.T) {
	opts := &deploy.Options{
		Target:        deploy.Target{Host: "raspberrypi.local", User: "pi", Dir: "/home/pi/raspai"},
		IncludeLegacy: true,
		RunSetup:      true,
	}
	result := &deploy.Result{
		Success:  true,
		Copied:   []string{"raspai_integrated.py", "requirements.txt"},
		Duration: 3400 * time.Millisecond,
	}
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry := historyEntry(opts, result, started)

	_, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "raspberrypi.local", entry.Host)
	assert.Equal(t, "pi", entry.User)
	assert.Equal(t, "/home/pi/raspai", entry.Dir)
	assert.True(t, entry.IncludeLegacy)
	assert.True(t, entry.RanSetup)
	assert.True(t, entry.Success)
	assert.Equal(t, 2, entry.FilesCopied)
	assert.Equal(t, started, entry.StartedAt)
	assert.Equal(t, "3s", entry.Duration)
}

func TestHistoryEntryFailure(t *testing.T) {
	opts := &deploy.Options{
		Target: deploy.Target{Host: "pi.local", User: "pi", Dir: "~/raspai"},
	}
	result := &deploy.Result{
		Success: false,
		Copied:  []string{"README.md"},
		Failed:  []deploy.FileResult{{Name: "requirements.txt", Err: assert.AnError}},
	}

	entry := historyEntry(opts, result, time.Now())

	assert.False(t, entry.Success)
	assert.Equal(t, 1, entry.FilesCopied)
	assert.False(t, entry.IncludeLegacy)
}

func TestReviewSummary(t *testing.T) {
	form := tui.TargetForm{
		Host:          "raspberrypi.local",
		User:          "pi",
		Dir:           "/home/pi/raspai",
		IncludeLegacy: true,
		RunSetup:      false,
	}

	summary := reviewSummary(form, 2, 9)

	assert.Contains(t, summary, "raspberrypi.local")
	assert.Contains(t, summary, "pi")
	assert.Contains(t, summary, "/home/pi/raspai")
	assert.Contains(t, summary, "2 local keys + agent")
	assert.Contains(t, summary, "9 to copy")
	assert.Contains(t, summary, "Legacy:     yes")
	assert.Contains(t, summary, "Run setup:  no")
}

func TestReviewSummaryPasswordOnly(t *testing.T) {
	form := tui.TargetForm{Host: "pi.local", User: "pi", Dir: "~/raspai", Password: "raspberry"}

	summary := reviewSummary(form, 0, 5)

	assert.Contains(t, summary, "Auth:       password")
	assert.NotContains(t, summary, "agent")
	assert.NotContains(t, summary, "raspberry")
}

func TestKeyPaths(t *testing.T) {
	keys := []tui.SSHKeyInfo{
		{Path: "/home/op/.ssh/id_ed25519"},
		{Path: "/home/op/.ssh/id_rsa"},
	}
	assert.Equal(t, []string{"/home/op/.ssh/id_ed25519", "/home/op/.ssh/id_rsa"}, keyPaths(keys))
	assert.Empty(t, keyPaths(nil))
}

func TestTailLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"c", "d"}, tailLines(lines, 2))
	assert.Equal(t, lines, tailLines(lines, 10))
	assert.Empty(t, tailLines(nil, 3))
}
