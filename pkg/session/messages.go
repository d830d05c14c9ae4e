package session

import "github.com/xVc323/raspai/pkg/deploy"

// progressMsg wraps a deploy.ProgressEvent for Bubble Tea.
type progressMsg deploy.ProgressEvent

// completeMsg is sent when the deployment finishes.
type completeMsg struct {
	result *deploy.Result
}
