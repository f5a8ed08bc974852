package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inkwellvn/blog-generator-services-backend/internal/models"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services"
	"github.com/inkwellvn/blog-generator-services-backend/internal/services/excel"
	"github.com/inkwellvn/blog-generator-services-backend/internal/utils"
)

type BlogHandler struct {
	blogService  *services.BlogService
	excelService *excel.Service
	sseHub       *services.SSEHub
}

func NewBlogHandler(blogService *services.BlogService, excelService *excel.Service, sseHub *services.SSEHub) *BlogHandler {
	return &BlogHandler{
		blogService:  blogService,
		excelService: excelService,
		sseHub:       sseHub,
	}
}

// GenerateBlog godoc
// @Summary Generate a blog post
// @Description Run the full generation chain (topics, outline, content, polish) synchronously
// @Tags blog
// @Accept json
// @Produce json
// @Param request body models.GenerateBlogRequest true "Generation request"
// @Success 200 {object} models.GenerateBlogResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/blog/generate [post]
func (h *BlogHandler) GenerateBlog(c *gin.Context) {
	var req models.GenerateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	post, err := h.blogService.GenerateSync(c.Request.Context(), userID, &req)
	if err != nil {
		logrus.Errorf("Blog generation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Blog generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.GenerateBlogResponse{
		ID:              post.ID,
		Domain:          post.Domain,
		TargetAudience:  post.TargetAudience,
		Topics:          post.Topics,
		Outline:         post.Outline,
		Content:         post.Content,
		PolishedContent: post.PolishedContent,
	})
}

// GenerateBlogStream godoc
// @Summary Generate a blog post and stream chain stages via SSE
// @Description Streams events topics, outline, initial_content, final_content (or error) as each chain step completes
// @Tags blog
// @Produce text/event-stream
// @Param domain query string true "Subject area"
// @Param target_audience query string true "Intended audience"
// @Success 200 "SSE stream"
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/blog/generate/stream [get]
func (h *BlogHandler) GenerateBlogStream(c *gin.Context) {
	domain := c.Query("domain")
	targetAudience := c.Query("target_audience")
	if domain == "" || targetAudience == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain and target_audience query parameters are required"})
		return
	}

	userID := c.GetString("user_id")

	post, err := h.blogService.CreatePendingPost(userID, &models.GenerateBlogRequest{
		Domain:         domain,
		TargetAudience: targetAudience,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blog post", "details": err.Error()})
		return
	}

	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	// Register client before the chain starts so no stage event is missed
	clientChan := h.sseHub.RegisterClient(post.ID)
	defer h.sseHub.UnregisterClient(post.ID, clientChan)

	// Send initial connection message
	c.SSEvent("connected", gin.H{
		"post_id": post.ID,
		"message": "Connected to generation stream",
	})
	c.Writer.Flush()

	// Run the chain on the request context so a client disconnect aborts
	// the remaining steps
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.blogService.Execute(c.Request.Context(), post)
	}()

	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Infof("SSE client disconnected from post %s", post.ID)
			return
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		case <-done:
			// Chain finished; flush whatever is still buffered
			for {
				select {
				case message, ok := <-clientChan:
					if !ok {
						return
					}
					if _, err := c.Writer.Write(message); err != nil {
						return
					}
					c.Writer.Flush()
				default:
					return
				}
			}
		}
	}
}

// EnqueueBlog godoc
// @Summary Enqueue an async blog generation
// @Description Publish a generation job to RabbitMQ and return the pending post id
// @Tags blog
// @Accept json
// @Produce json
// @Param request body models.GenerateBlogRequest true "Generation request"
// @Success 202 {object} models.EnqueueBlogResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/blog/generate/async [post]
func (h *BlogHandler) EnqueueBlog(c *gin.Context) {
	var req models.GenerateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")

	post, err := h.blogService.EnqueueGeneration(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to enqueue generation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, models.EnqueueBlogResponse{
		ID:     post.ID,
		Status: post.Status,
	})
}

// GetBlogPost godoc
// @Summary Get a blog post
// @Description Get a generated blog post by its ID
// @Tags blog
// @Produce json
// @Param id path string true "Blog post ID"
// @Success 200 {object} models.BlogPostResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/blog/posts/{id} [get]
func (h *BlogHandler) GetBlogPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.blogService.GetPost(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	c.JSON(http.StatusOK, h.postToResponse(post))
}

// StreamBlogPost godoc
// @Summary Stream generation progress via Server-Sent Events (SSE)
// @Description Stream real-time chain stage events for an in-flight generation
// @Tags blog
// @Produce text/event-stream
// @Param id path string true "Blog post ID"
// @Success 200 "SSE stream"
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/blog/posts/{id}/stream [get]
func (h *BlogHandler) StreamBlogPost(c *gin.Context) {
	id := c.Param("id")

	post, err := h.blogService.GetPost(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	// Register client
	clientChan := h.sseHub.RegisterClient(post.ID)
	defer h.sseHub.UnregisterClient(post.ID, clientChan)

	// Send initial connection message
	c.SSEvent("connected", gin.H{
		"post_id": post.ID,
		"status":  post.Status,
		"message": "Connected to generation stream",
	})
	c.Writer.Flush()

	// Replay stages that already completed before the client connected
	h.replayStages(c, post)
	if post.Status == models.BlogPostStatusCompleted || post.Status == models.BlogPostStatusFailed {
		return
	}

	// Send events as they arrive
	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Infof("SSE client disconnected from post %s", post.ID)
			return
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		}
	}
}

// ListBlogPosts godoc
// @Summary List own blog posts
// @Description Get paginated blog posts belonging to the authenticated user
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/blog/posts [get]
func (h *BlogHandler) ListBlogPosts(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	posts, total, err := h.blogService.GetUserPosts(userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get blog posts", "details": err.Error()})
		return
	}

	responses := make([]models.BlogPostResponse, len(posts))
	for i, post := range posts {
		responses[i] = h.postToResponse(post)
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       responses,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// DeleteBlogPost godoc
// @Summary Delete a blog post
// @Description Delete a blog post owned by the authenticated user
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blog post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/blog/posts/{id} [delete]
func (h *BlogHandler) DeleteBlogPost(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	if err := h.blogService.DeletePost(id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog post", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted"})
}

// ExportBlogPosts godoc
// @Summary Export blog posts to Excel
// @Description Export the authenticated user's generation history as an xlsx file
// @Tags blog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 "xlsx file"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/blog/posts/export [get]
func (h *BlogHandler) ExportBlogPosts(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	// Export everything the user has, newest first
	posts, _, err := h.blogService.GetUserPosts(userID, 1, 1000)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get blog posts", "details": err.Error()})
		return
	}

	result, err := h.excelService.ExportBlogPosts(userID, posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export blog posts", "details": err.Error()})
		return
	}

	c.FileAttachment(result.FilePath, result.Filename)
}

// replayStages emits events for chain stages already persisted on the post
func (h *BlogHandler) replayStages(c *gin.Context, post *models.BlogPost) {
	if post.Topics != "" {
		c.SSEvent(services.StageTopics, gin.H{"topics": utils.SplitNonEmptyLines(post.Topics)})
	}
	if post.Outline != "" {
		c.SSEvent(services.StageOutline, gin.H{"outline": post.Outline, "topic": post.ChosenTopic})
	}
	if post.Content != "" {
		c.SSEvent(services.StageInitialContent, gin.H{"content": post.Content})
	}
	if post.PolishedContent != "" {
		c.SSEvent(services.StageFinalContent, gin.H{"content": post.PolishedContent})
	}
	if post.Status == models.BlogPostStatusFailed {
		c.SSEvent(services.StageError, gin.H{"error": post.ErrorMessage})
	}
	c.Writer.Flush()
}

func (h *BlogHandler) postToResponse(post *models.BlogPost) models.BlogPostResponse {
	response := models.BlogPostResponse{
		ID:              post.ID,
		Domain:          post.Domain,
		TargetAudience:  post.TargetAudience,
		Topics:          post.Topics,
		ChosenTopic:     post.ChosenTopic,
		Outline:         post.Outline,
		Content:         post.Content,
		PolishedContent: post.PolishedContent,
		Status:          post.Status,
		ErrorMessage:    post.ErrorMessage,
		CreatedAt:       post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       post.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if post.UserID != nil {
		response.UserID = *post.UserID
	}
	return response
}
