package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blog post generation statuses
const (
	BlogPostStatusPending   = "pending"
	BlogPostStatusRunning   = "running"
	BlogPostStatusCompleted = "completed"
	BlogPostStatusFailed    = "failed"
)

// BlogPost represents a single blog generation run and its chain outputs.
// Each stage column is filled as the chain progresses, so async runs keep
// whatever stages completed before a failure.
type BlogPost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner (optional, requests without a bearer token are anonymous)
	UserID *string `json:"user_id,omitempty" gorm:"type:uuid;index"`

	// Input
	Domain         string `json:"domain" gorm:"type:varchar(255);not null" example:"artificial intelligence"`
	TargetAudience string `json:"target_audience" gorm:"type:varchar(255);not null" example:"business professionals"`

	// Chain outputs
	Topics          string `json:"topics" gorm:"type:text"`
	ChosenTopic     string `json:"chosen_topic" gorm:"type:varchar(500)"`
	Outline         string `json:"outline" gorm:"type:text"`
	Content         string `json:"content" gorm:"type:text"`
	PolishedContent string `json:"polished_content" gorm:"type:text"`

	// Tracking
	Status       string `json:"status" gorm:"type:varchar(20);default:'pending';index" example:"completed"`
	ErrorMessage string `json:"error_message,omitempty" gorm:"type:text"`
	Metadata     JSON   `json:"metadata,omitempty" gorm:"type:jsonb"` // {model, duration_ms, ...}

	// Relationships
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the BlogPost model
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate assigns the ID so it is available before the insert returns
func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// GenerateBlogRequest represents the request to generate a blog post
type GenerateBlogRequest struct {
	Domain         string `json:"domain" binding:"required" example:"artificial intelligence"`
	TargetAudience string `json:"target_audience" binding:"required" example:"business professionals"`
}

// GenerateBlogResponse represents the response of a synchronous generation
type GenerateBlogResponse struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Domain          string `json:"domain" example:"artificial intelligence"`
	TargetAudience  string `json:"target_audience" example:"business professionals"`
	Topics          string `json:"topics"`
	Outline         string `json:"outline"`
	Content         string `json:"content"`
	PolishedContent string `json:"polished_content"`
}

// EnqueueBlogResponse represents the response of an async generation request
type EnqueueBlogResponse struct {
	ID     string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status string `json:"status" example:"pending"`
}

// BlogPostResponse represents the response for blog post read operations
type BlogPostResponse struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID          string `json:"user_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440001"`
	Domain          string `json:"domain" example:"artificial intelligence"`
	TargetAudience  string `json:"target_audience" example:"business professionals"`
	Topics          string `json:"topics"`
	ChosenTopic     string `json:"chosen_topic"`
	Outline         string `json:"outline"`
	Content         string `json:"content"`
	PolishedContent string `json:"polished_content"`
	Status          string `json:"status" example:"completed"`
	ErrorMessage    string `json:"error_message,omitempty"`
	CreatedAt       string `json:"created_at" example:"2025-01-21T10:00:00Z"`
	UpdatedAt       string `json:"updated_at" example:"2025-01-21T10:00:00Z"`
}

// BlogJobMessage is the payload published to the generation queue
type BlogJobMessage struct {
	PostID         string `json:"post_id"`
	Domain         string `json:"domain"`
	TargetAudience string `json:"target_audience"`
	UserID         string `json:"user_id,omitempty"`
}
