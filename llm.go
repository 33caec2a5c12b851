package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/rs/zerolog/log"
	genai "google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	maxAskAttempts     = 3
)

// askPromptTemplate wraps the report for a question-answering call. {{CONTEXT}}
// is substituted with the full report, {{QUESTION}} with the user's question.
const askPromptTemplate = `You are assisting with a software project. Below is a full snapshot of the
project: its folder structure followed by the contents of every text file.

{{CONTEXT}}

Answer the following question about the project. Be specific and reference
file paths where relevant.

Question: {{QUESTION}}`

// askLLM substitutes the report into the prompt template and forwards it to
// the Gemini API. Credentials come from GEMINI_API_KEY, with .env loaded
// first so local setups work without exporting anything.
func askLLM(ctx context.Context, report *Report, question, model string) (string, error) {
	_ = godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	prompt := buildAskPrompt(report, question)
	log.Debug().Int("bytes", len(prompt)).Str("model", model).Msg("sending prompt")

	var lastErr error
	for attempt := 0; attempt < maxAskAttempts; attempt++ {
		resp, err := cli.Models.GenerateContent(ctx, model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = fmt.Errorf("empty response from model")
		} else {
			return resp.Candidates[0].Content.Parts[0].Text, nil
		}
		if d := askBackoff(attempt); d > 0 {
			time.Sleep(d)
		}
	}
	return "", lastErr
}

// buildAskPrompt substitutes the report and question into the template.
func buildAskPrompt(report *Report, question string) string {
	prompt := strings.ReplaceAll(askPromptTemplate, "{{CONTEXT}}", report.Text)
	return strings.ReplaceAll(prompt, "{{QUESTION}}", question)
}

// askBackoff returns the delay before the next attempt; zero after the last
// one, so a failed run doesn't sleep on the way out.
func askBackoff(attempt int) time.Duration {
	if attempt >= maxAskAttempts-1 {
		return 0
	}
	return time.Duration(300*(1<<attempt)) * time.Millisecond
}
