package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// DraftTask is a task suggestion extracted from kickoff notes. Drafts are
// suggestions only; creating them goes through the normal task validation.
type DraftTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftTasksFromNotes extracts transition task suggestions from free-form
// contract kickoff notes using OpenAI GPT
func (s *AIService) DraftTasksFromNotes(ctx context.Context, notes string) ([]DraftTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are an assistant that extracts actionable transition tasks from government contract kickoff notes.

Current time: %s

Notes:
%s

Return a JSON array of the extracted tasks in this exact shape:
[
  {
    "title": "Short task title",
    "description": "Detailed task description",
    "due_date": "Deadline in ISO8601 format, e.g. 2025-10-28T23:59:59Z, or null when no deadline is mentioned"
  }
]

Rules:
- Return an empty array [] when the notes contain no tasks
- Convert relative deadlines ("next Friday", "within 30 days") to concrete dates
- due_date must be an ISO8601 string or null
- Return only the JSON, no prose`, currentTime, notes)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []DraftTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}
