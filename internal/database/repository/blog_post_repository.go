package repository

import (
	"github.com/inkwellvn/blog-generator-services-backend/internal/models"
	"github.com/inkwellvn/blog-generator-services-backend/internal/utils"

	"gorm.io/gorm"
)

type BlogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

// Create creates a new blog post record
func (r *BlogPostRepository) Create(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a blog post by ID
func (r *BlogPostRepository) GetByID(id string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByUserID retrieves blog posts for a user with pagination, newest first
func (r *BlogPostRepository) GetByUserID(userID string, page, pageSize int) ([]*models.BlogPost, int64, error) {
	var posts []*models.BlogPost
	var total int64

	query := r.db.Model(&models.BlogPost{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset(utils.CalculateOffset(page, pageSize)).
		Limit(pageSize).
		Find(&posts).Error
	return posts, total, err
}

// Update updates a blog post
func (r *BlogPostRepository) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// UpdateFields updates specific columns of a blog post
func (r *BlogPostRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&models.BlogPost{}).Where("id = ?", id).Updates(fields).Error
}

// Delete deletes a blog post owned by the given user
func (r *BlogPostRepository) Delete(id string, userID string) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
