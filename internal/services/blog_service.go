package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inkwellvn/blog-generator-services-backend/internal/database/repository"
	"github.com/inkwellvn/blog-generator-services-backend/internal/models"
)

// BlogService orchestrates blog generation: it persists posts, runs the
// prompt chain, broadcasts stage events over SSE, and consumes async
// generation jobs from RabbitMQ.
type BlogService struct {
	postRepo *repository.BlogPostRepository
	chain    *PromptChainService
	sseHub   *SSEHub
	rabbitMQ *RabbitMQService
	stopChan chan bool
}

func NewBlogService(postRepo *repository.BlogPostRepository, chain *PromptChainService, sseHub *SSEHub, rabbitMQ *RabbitMQService) *BlogService {
	return &BlogService{
		postRepo: postRepo,
		chain:    chain,
		sseHub:   sseHub,
		rabbitMQ: rabbitMQ,
		stopChan: make(chan bool),
	}
}

// CreatePendingPost stores a new post in pending state. userID may be empty
// for anonymous requests.
func (s *BlogService) CreatePendingPost(userID string, req *models.GenerateBlogRequest) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Domain:         req.Domain,
		TargetAudience: req.TargetAudience,
		Status:         models.BlogPostStatusPending,
	}
	if userID != "" {
		post.UserID = &userID
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return post, nil
}

// GenerateSync creates a post and runs the chain end-to-end, returning the
// completed post.
func (s *BlogService) GenerateSync(ctx context.Context, userID string, req *models.GenerateBlogRequest) (*models.BlogPost, error) {
	post, err := s.CreatePendingPost(userID, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.Execute(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(post.ID)
}

// Execute runs the prompt chain for a stored post, persisting each stage
// output and broadcasting stage events to SSE subscribers. On failure the
// post is marked failed and an error event is broadcast; completed stages
// stay persisted.
func (s *BlogService) Execute(ctx context.Context, post *models.BlogPost) (*ChainResult, error) {
	start := time.Now()

	s.updatePost(post.ID, map[string]interface{}{"status": models.BlogPostStatusRunning})

	onStage := func(stage string, result *ChainResult) {
		s.persistStage(post.ID, stage, result)
		s.broadcastStage(post.ID, stage, result)
	}

	result, err := s.chain.Run(ctx, post.Domain, post.TargetAudience, onStage)
	if err != nil {
		logrus.Errorf("Blog generation failed for post %s: %v", post.ID, err)
		s.updatePost(post.ID, map[string]interface{}{
			"status":        models.BlogPostStatusFailed,
			"error_message": err.Error(),
		})
		s.sseHub.BroadcastStage(post.ID, StageError, map[string]string{"error": err.Error()})
		return nil, err
	}

	s.updatePost(post.ID, map[string]interface{}{
		"status": models.BlogPostStatusCompleted,
		"metadata": models.JSON{
			"duration_ms": time.Since(start).Milliseconds(),
		},
	})

	logrus.Infof("Blog generation completed for post %s in %s", post.ID, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// EnqueueGeneration creates a pending post and publishes a generation job
func (s *BlogService) EnqueueGeneration(ctx context.Context, userID string, req *models.GenerateBlogRequest) (*models.BlogPost, error) {
	if s.rabbitMQ == nil {
		return nil, fmt.Errorf("async generation unavailable: RabbitMQ is not connected")
	}

	post, err := s.CreatePendingPost(userID, req)
	if err != nil {
		return nil, err
	}

	job := &models.BlogJobMessage{
		PostID:         post.ID,
		Domain:         post.Domain,
		TargetAudience: post.TargetAudience,
		UserID:         userID,
	}
	if err := s.rabbitMQ.PublishMessage(ctx, BlogGenerationQueue, job); err != nil {
		s.updatePost(post.ID, map[string]interface{}{
			"status":        models.BlogPostStatusFailed,
			"error_message": "failed to enqueue generation job",
		})
		return nil, fmt.Errorf("failed to enqueue generation job: %w", err)
	}

	return post, nil
}

// StartConsumer starts consuming generation jobs from RabbitMQ
func (s *BlogService) StartConsumer() error {
	msgs, err := s.rabbitMQ.channel.Consume(
		BlogGenerationQueue, // queue
		"",                  // consumer
		true,                // auto-ack
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,                 // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logrus.Infof("RabbitMQ consumer started for %s queue", BlogGenerationQueue)

	// Process messages in goroutine
	go func() {
		for {
			select {
			case <-s.stopChan:
				logrus.Info("RabbitMQ consumer stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					logrus.Warn("RabbitMQ channel closed")
					return
				}

				if err := s.processJobMessage(msg.Body); err != nil {
					logrus.Errorf("Failed to process generation job: %v", err)
				}
			}
		}
	}()

	return nil
}

// StopConsumer stops the consumer
func (s *BlogService) StopConsumer() {
	close(s.stopChan)
}

// processJobMessage runs the chain for a queued generation job
func (s *BlogService) processJobMessage(body []byte) error {
	var job models.BlogJobMessage
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("failed to unmarshal job message: %w", err)
	}

	post, err := s.postRepo.GetByID(job.PostID)
	if err != nil {
		return fmt.Errorf("post %s not found for job: %w", job.PostID, err)
	}

	// Jobs run detached from any request context
	_, err = s.Execute(context.Background(), post)
	return err
}

// GetPost retrieves a post by ID
func (s *BlogService) GetPost(id string) (*models.BlogPost, error) {
	return s.postRepo.GetByID(id)
}

// GetUserPosts retrieves paginated posts for a user
func (s *BlogService) GetUserPosts(userID string, page, pageSize int) ([]*models.BlogPost, int64, error) {
	return s.postRepo.GetByUserID(userID, page, pageSize)
}

// DeletePost deletes a post owned by the user
func (s *BlogService) DeletePost(id, userID string) error {
	return s.postRepo.Delete(id, userID)
}

func (s *BlogService) persistStage(postID, stage string, result *ChainResult) {
	switch stage {
	case StageTopics:
		s.updatePost(postID, map[string]interface{}{
			"topics":       result.TopicsRaw,
			"chosen_topic": result.ChosenTopic,
		})
	case StageOutline:
		s.updatePost(postID, map[string]interface{}{"outline": result.Outline})
	case StageInitialContent:
		s.updatePost(postID, map[string]interface{}{"content": result.Content})
	case StageFinalContent:
		s.updatePost(postID, map[string]interface{}{"polished_content": result.PolishedContent})
	}
}

func (s *BlogService) broadcastStage(postID, stage string, result *ChainResult) {
	switch stage {
	case StageTopics:
		s.sseHub.BroadcastStage(postID, stage, map[string]interface{}{"topics": result.Topics})
	case StageOutline:
		s.sseHub.BroadcastStage(postID, stage, map[string]interface{}{
			"outline": result.Outline,
			"topic":   result.ChosenTopic,
		})
	case StageInitialContent:
		s.sseHub.BroadcastStage(postID, stage, map[string]interface{}{"content": result.Content})
	case StageFinalContent:
		s.sseHub.BroadcastStage(postID, stage, map[string]interface{}{"content": result.PolishedContent})
	}
}

func (s *BlogService) updatePost(postID string, fields map[string]interface{}) {
	if err := s.postRepo.UpdateFields(postID, fields); err != nil {
		logrus.Errorf("Failed to update post %s: %v", postID, err)
	}
}
