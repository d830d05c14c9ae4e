package doctor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/xVc323/raspai/pkg/config"
)

// GeminiModel is the model the assistant talks to, used for the live check.
const GeminiModel = "gemini-2.0-flash-lite"

// IDGeminiLive identifies the live API round-trip check.
const IDGeminiLive = "gemini-live"

// livePrompt keeps the round-trip cheap.
const livePrompt = "Reply with a short one-line greeting."

// LiveCheck performs one Gemini round-trip to prove the API key works.
// It talks to the network, so callers must opt in.
func LiveCheck(ctx context.Context, apiKey string) Check {
	check := Check{
		ID:          IDGeminiLive,
		Name:        "Gemini API",
		Description: "Round-trip with " + GeminiModel,
	}

	if apiKey == "" {
		check.Status = StatusMissing
		check.Message = config.KeyAPIKey + " not set"
		return check
	}

	if apiKey == config.Placeholder {
		check.Status = StatusWarning
		check.Message = "still the placeholder value"
		return check
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		check.Status = StatusError
		check.Message = fmt.Sprintf("client: %v", err)
		return check
	}

	resp, err := client.Models.GenerateContent(ctx, GeminiModel, genai.Text(livePrompt), nil)
	if err != nil {
		check.Status = StatusError
		check.Message = fmt.Sprintf("request failed: %v", err)
		return check
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		check.Status = StatusWarning
		check.Message = "empty response"
		return check
	}

	check.Status = StatusOK
	check.Message = snippet(reply, 60)
	return check
}

// snippet shortens a reply for single-line display.
func snippet(s string, max int) string {
	s = strings.SplitN(s, "\n", 2)[0]
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
