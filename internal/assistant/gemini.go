// Package assistant answers questions about a user's notes with Gemini.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"notodo/internal/models"
)

const DefaultModel = "gemini-2.5-flash"

const (
	roleUser  = "user"
	roleModel = "model"
)

var ErrNoAPIKey = errors.New("gemini api key not configured")

// Gemini implements service.Analyzer on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, logger: logger}, nil
}

// Ask sends the notes as system context, replays history and asks question.
func (g *Gemini) Ask(ctx context.Context, notes []models.Note, question string, history []models.ChatMessage) (string, error) {
	g.logger.Debug("gemini request", "model", g.model, "notes", len(notes), "history", len(history))

	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: SystemPrompt(notes)},
			},
		},
	}, History(history))
	if err != nil {
		return "", fmt.Errorf("failed to create chat session: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return firstText(resp)
}

// SystemPrompt renders the user's notes into the instruction the model is primed with.
func SystemPrompt(notes []models.Note) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant analyzing a user's personal notes. ")
	b.WriteString("Here are their notes:\n\n")

	for _, note := range notes {
		fmt.Fprintf(&b, "--- %s [%s] (updated %s) ---\n%s\n\n",
			note.Title, models.CategoryOrDefault(note.Category), note.UpdatedAt.Format(time.RFC1123), note.Content)
	}
	return b.String()
}

// History converts prior turns. Anything that is not "model" is sent as the user.
func History(history []models.ChatMessage) []*genai.Content {
	var out []*genai.Content
	for _, msg := range history {
		role := roleUser
		if msg.Role == roleModel {
			role = roleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	return out
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	if text := resp.Candidates[0].Content.Parts[0].Text; text != "" {
		return text, nil
	}
	return "", fmt.Errorf("empty response from Gemini")
}
