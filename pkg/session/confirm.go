package session

import (
	"fmt"

	"github.com/xVc323/raspai/pkg/tui"
)

// confirmDeployment shows a review and asks for confirmation.
func confirmDeployment(form tui.TargetForm, keyCount, fileCount int) (bool, error) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Review Deployment"))
	fmt.Println()
	fmt.Println(boxStyle.Render(reviewSummary(form, keyCount, fileCount)))
	fmt.Println()

	return tui.ConfirmProceed(
		"Start deployment?",
		"Files are copied over SSH, nothing is removed on the device",
		false,
	)
}

// reviewSummary renders the review box contents.
func reviewSummary(form tui.TargetForm, keyCount, fileCount int) string {
	auth := "password"
	if keyCount > 0 {
		auth = fmt.Sprintf("%d local keys + agent", keyCount)
		if form.Password != "" {
			auth += ", password fallback"
		}
	}

	return fmt.Sprintf(`%s
  Host:       %s
  Username:   %s
  Directory:  %s
  Auth:       %s

%s
  Files:      %d to copy
  Legacy:     %s
  Run setup:  %s`,
		successStyle.Render("Target"),
		form.Host,
		form.User,
		form.Dir,
		auth,
		successStyle.Render("Options"),
		fileCount,
		yesNo(form.IncludeLegacy),
		yesNo(form.RunSetup),
	)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
