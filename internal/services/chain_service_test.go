package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellvn/blog-generator-services-backend/internal/services/llm"
)

// scriptedLLM returns canned responses in call order and records every
// prompt it was given.
type scriptedLLM struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *scriptedLLM) Complete(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i >= len(f.responses) {
		return "", errors.New("unexpected call")
	}
	return f.responses[i], nil
}

func validTopics() string {
	return "1. First topic\n2. Second topic\n3. Third topic\n4. Fourth topic\n5. Fifth topic"
}

func validOutline() string {
	return "Introduction\n  - why it matters\nMain Body\n  - key argument\nConclusion\n  - takeaways"
}

func validContent() string {
	return strings.TrimSpace(strings.Repeat("word ", 350))
}

func validResponses() []string {
	content := validContent()
	return []string{
		validTopics(),
		validOutline(),
		content,
		"A polished version of the draft. " + content,
	}
}

func TestRunCallsModelFourTimesInOrder(t *testing.T) {
	client := &scriptedLLM{responses: validResponses()}
	chain := NewPromptChainService(client)

	result, err := chain.Run(context.Background(), "artificial intelligence", "business professionals", nil)
	require.NoError(t, err)
	require.Len(t, client.prompts, 4)

	// Step 1 prompt is built from the request
	assert.Contains(t, client.prompts[0], "artificial intelligence")
	assert.Contains(t, client.prompts[0], "business professionals")

	// Each subsequent prompt embeds the prior step's output
	assert.Contains(t, client.prompts[1], "1. First topic")
	assert.Contains(t, client.prompts[2], validOutline())
	assert.Contains(t, client.prompts[3], validContent())

	// All four fields are populated on success
	assert.Len(t, result.Topics, 5)
	assert.Equal(t, "1. First topic", result.ChosenTopic)
	assert.Equal(t, validOutline(), result.Outline)
	assert.Equal(t, validContent(), result.Content)
	assert.NotEmpty(t, result.PolishedContent)
}

func TestRunStopsAfterStepFailure(t *testing.T) {
	tests := []struct {
		name      string
		failStep  int
		wantInErr string
	}{
		{"topics step fails", 1, "failed to generate topics"},
		{"outline step fails", 2, "failed to create outline"},
		{"content step fails", 3, "failed to write content"},
		{"polish step fails", 4, "failed to polish content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := make([]error, tt.failStep)
			errs[tt.failStep-1] = errors.New("api unavailable")

			client := &scriptedLLM{responses: validResponses(), errs: errs}
			chain := NewPromptChainService(client)

			result, err := chain.Run(context.Background(), "cooking", "home chefs", nil)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.wantInErr)

			// No calls are made past the failing step
			assert.Len(t, client.prompts, tt.failStep)
		})
	}
}

func TestRunQualityGates(t *testing.T) {
	valid := validResponses()

	tests := []struct {
		name      string
		responses []string
		wantCalls int
		wantInErr string
	}{
		{
			name:      "too few topics",
			responses: []string{"only one topic"},
			wantCalls: 1,
			wantInErr: "not enough topics",
		},
		{
			name:      "outline too short",
			responses: []string{valid[0], "Single Section\n  - a point"},
			wantCalls: 2,
			wantInErr: "outline is too short",
		},
		{
			name:      "content too short",
			responses: []string{valid[0], valid[1], "too short"},
			wantCalls: 3,
			wantInErr: "content is too short",
		},
		{
			name:      "polish made no edits",
			responses: []string{valid[0], valid[1], valid[2], valid[2]},
			wantCalls: 4,
			wantInErr: "no meaningful edits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedLLM{responses: tt.responses}
			chain := NewPromptChainService(client)

			_, err := chain.Run(context.Background(), "travel", "backpackers", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantInErr)
			assert.Len(t, client.prompts, tt.wantCalls)
		})
	}
}

func TestRunEmitsStageEventsInOrder(t *testing.T) {
	client := &scriptedLLM{responses: validResponses()}
	chain := NewPromptChainService(client)

	var stages []string
	onStage := func(stage string, result *ChainResult) {
		stages = append(stages, stage)
		// The result passed to the callback is filled up to the stage
		switch stage {
		case StageTopics:
			assert.NotEmpty(t, result.Topics)
			assert.Empty(t, result.Outline)
		case StageOutline:
			assert.NotEmpty(t, result.Outline)
			assert.Empty(t, result.Content)
		case StageInitialContent:
			assert.NotEmpty(t, result.Content)
			assert.Empty(t, result.PolishedContent)
		case StageFinalContent:
			assert.NotEmpty(t, result.PolishedContent)
		}
	}

	_, err := chain.Run(context.Background(), "finance", "students", onStage)
	require.NoError(t, err)
	assert.Equal(t, []string{StageTopics, StageOutline, StageInitialContent, StageFinalContent}, stages)
}

func TestRunWithMockClient(t *testing.T) {
	chain := NewPromptChainService(llm.MockClient{})

	result, err := chain.Run(context.Background(), "gardening", "beginners", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Topics), 3)
	assert.NotEmpty(t, result.Outline)
	assert.NotEmpty(t, result.Content)
	assert.NotEmpty(t, result.PolishedContent)
	assert.NotEqual(t, strings.TrimSpace(result.Content), strings.TrimSpace(result.PolishedContent))
}
