package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetString(t *testing.T) {
	target := Target{Host: "raspberrypi.local", User: "pi", Dir: "/home/pi/raspai"}
	assert.Equal(t, "pi@raspberrypi.local:/home/pi/raspai", target.String())
}

func TestStageDisplayName(t *testing.T) {
	assert.Equal(t, "Transferring Files", StageTransfer.DisplayName())
	assert.Equal(t, "Preparing Directory", StagePreparing.DisplayName())
	assert.Equal(t, "Mystery", Stage("mystery").DisplayName())
}

func TestProgressTracker(t *testing.T) {
	tracker := NewProgressTracker()
	cb := tracker.Callback()

	assert.Nil(t, tracker.LastEvent())
	assert.False(t, tracker.HasErrors())

	cb(NewProgressEvent(StageConnecting, "Connecting", 10))
	cb(NewProgressEventWithDetail(StageTransfer, "Copying files", "requirements.txt", 50))
	cb(NewErrorEvent("copy failed"))

	require.Len(t, tracker.Events(), 3)
	assert.Equal(t, StageError, tracker.LastEvent().Stage)
	assert.True(t, tracker.HasErrors())

	errs := tracker.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "copy failed", errs[0].Message)
	assert.Equal(t, -1, errs[0].Percent)
	assert.True(t, errs[0].IsError)

	detail := tracker.Events()[1]
	assert.Equal(t, "requirements.txt", detail.Detail)
	assert.False(t, detail.Timestamp.IsZero())
}
