package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inkwellvn/blog-generator-services-backend/internal/services/llm"
	"github.com/inkwellvn/blog-generator-services-backend/internal/utils"
)

// Quality gates between chain steps
const (
	minTopics          = 3
	minOutlineSections = 3
	minContentWords    = 300
)

// Chain stage names, also used as SSE event names
const (
	StageTopics         = "topics"
	StageOutline        = "outline"
	StageInitialContent = "initial_content"
	StageFinalContent   = "final_content"
	StageError          = "error"
)

// ChainResult holds the output of every completed chain stage
type ChainResult struct {
	Topics          []string `json:"topics"`
	TopicsRaw       string   `json:"-"`
	ChosenTopic     string   `json:"chosen_topic"`
	Outline         string   `json:"outline"`
	Content         string   `json:"content"`
	PolishedContent string   `json:"polished_content"`
}

// StageFunc is called after each chain stage completes, with the stage
// name and the result filled up to that stage.
type StageFunc func(stage string, result *ChainResult)

// PromptChainService runs the four-step blog generation chain:
// topics -> outline -> content -> polish. Each step feeds the next and
// any failure aborts the remaining steps.
type PromptChainService struct {
	llm llm.Client
}

func NewPromptChainService(client llm.Client) *PromptChainService {
	return &PromptChainService{llm: client}
}

// Run executes the chain for (domain, targetAudience). The model is called
// exactly four times, in order. onStage may be nil.
func (s *PromptChainService) Run(ctx context.Context, domain, targetAudience string, onStage StageFunc) (*ChainResult, error) {
	result := &ChainResult{}

	// Step 1: generate topics
	logrus.Infof("Chain step 1/4: generating topics for domain=%q audience=%q", domain, targetAudience)
	topicsRaw, err := s.llm.Complete(ctx, topicsPrompt(domain, targetAudience))
	if err != nil {
		return nil, fmt.Errorf("failed to generate topics: %w", err)
	}

	topics := utils.SplitNonEmptyLines(topicsRaw)
	if len(topics) < minTopics {
		return nil, fmt.Errorf("not enough topics generated: got %d, need at least %d", len(topics), minTopics)
	}
	result.Topics = topics
	result.TopicsRaw = topicsRaw
	result.ChosenTopic = topics[0]
	s.emit(onStage, StageTopics, result)

	// Step 2: create outline for the chosen topic
	logrus.Infof("Chain step 2/4: creating outline for topic %q", utils.Truncate(result.ChosenTopic, 80))
	outline, err := s.llm.Complete(ctx, outlinePrompt(result.ChosenTopic))
	if err != nil {
		return nil, fmt.Errorf("failed to create outline: %w", err)
	}

	if sections := utils.CountOutlineSections(outline); sections < minOutlineSections {
		return nil, fmt.Errorf("outline is too short: got %d sections, need at least %d", sections, minOutlineSections)
	}
	result.Outline = outline
	s.emit(onStage, StageOutline, result)

	// Step 3: write content from the outline
	logrus.Info("Chain step 3/4: writing content")
	content, err := s.llm.Complete(ctx, contentPrompt(outline))
	if err != nil {
		return nil, fmt.Errorf("failed to write content: %w", err)
	}

	if words := utils.WordCount(content); words < minContentWords {
		return nil, fmt.Errorf("content is too short: got %d words, need at least %d", words, minContentWords)
	}
	result.Content = content
	s.emit(onStage, StageInitialContent, result)

	// Step 4: edit and polish
	logrus.Info("Chain step 4/4: polishing content")
	polished, err := s.llm.Complete(ctx, polishPrompt(content))
	if err != nil {
		return nil, fmt.Errorf("failed to polish content: %w", err)
	}

	if strings.TrimSpace(polished) == strings.TrimSpace(content) {
		return nil, fmt.Errorf("no meaningful edits were made to the content")
	}
	result.PolishedContent = polished
	s.emit(onStage, StageFinalContent, result)

	return result, nil
}

func (s *PromptChainService) emit(onStage StageFunc, stage string, result *ChainResult) {
	if onStage != nil {
		onStage(stage, result)
	}
}
