package session

import (
	"fmt"
	"time"

	"github.com/xVc323/raspai/pkg/deploy"
	"github.com/xVc323/raspai/pkg/service"
)

// printResults prints the session results to the terminal (outside alt-screen).
func printResults(result *deploy.Result) {
	fmt.Println()

	if result == nil {
		fmt.Println(errorStyle.Render("Deployment did not complete."))
		return
	}

	if result.Success {
		fmt.Println(successStyle.Render("  Deployment Complete!"))
		fmt.Println()
		fmt.Printf("  Target:   %s\n", result.Target)
		fmt.Printf("  Files:    %d copied\n", len(result.Copied))
		fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Second))

		if len(result.Logs) > 0 {
			fmt.Println()
			fmt.Println(subtitleStyle.Render("  Device setup output:"))
			for _, line := range tailLines(result.Logs, 15) {
				fmt.Printf("    %s\n", line)
			}
		}

		fmt.Println()
		fmt.Println(dimStyle.Render("  To reach the assistant:"))
		fmt.Printf("    ssh %s@%s\n", result.Target.User, result.Target.Host)
		fmt.Printf("    journalctl -u %s -f\n", service.UnitName)
	} else {
		fmt.Println(errorStyle.Render("  Deployment Failed"))
		fmt.Println()
		if result.Error != nil {
			fmt.Printf("  Error: %s\n", result.Error)
		}

		if len(result.Failed) > 0 {
			fmt.Println()
			fmt.Println(warningStyle.Render("  Files that did not copy:"))
			for _, f := range result.Failed {
				fmt.Printf("    %s: %s\n", f.Name, f.Err)
			}
		}
		if len(result.Copied) > 0 {
			fmt.Println()
			fmt.Printf("  %d files were copied before the failure.\n", len(result.Copied))
		}
	}

	fmt.Println()
}

// tailLines returns the last n lines.
func tailLines(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
