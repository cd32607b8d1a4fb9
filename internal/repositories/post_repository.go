package repositories

import (
	"github.com/antonv42/textpost/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// All listings are ordered newest-first by publication date.
type PostRepository interface {
	CreatePost(post *models.Post) error
	CreatePosts(posts []*models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(offset, limit int) ([]models.Post, error)
	CountPosts() (int64, error)
	GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	GetPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorIDs(authorIDs []uint) (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// CreatePosts bulk-inserts posts, used by the seeder and test fixtures
func (r *PostgresPostRepository) CreatePosts(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return r.db.Create(posts).Error
}

// GetPostByID retrieves a post with its author and group preloaded
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) listing() *gorm.DB {
	return r.db.Preload("Author").Preload("Group").Order("pub_date DESC")
}

// GetPosts retrieves a page of all posts, newest first
func (r *PostgresPostRepository) GetPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.listing().Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (r *PostgresPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// GetPostsByAuthorID retrieves a page of posts by a single author
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listing().Where("author_id = ?", authorID).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByAuthorID returns the number of posts by a single author
func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetPostsByGroupID retrieves a page of posts tagged to a group
func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.listing().Where("group_id = ?", groupID).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByGroupID returns the number of posts tagged to a group
func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// GetPostsByAuthorIDs retrieves a page of posts by any of the given authors,
// used for the followed-authors feed
func (r *PostgresPostRepository) GetPostsByAuthorIDs(authorIDs []uint, offset, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	err := r.listing().Where("author_id IN ?", authorIDs).
		Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountPostsByAuthorIDs returns the number of posts by any of the given authors
func (r *PostgresPostRepository) CountPostsByAuthorIDs(authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs).Count(&count).Error
	return count, err
}

// UpdatePost updates an existing post in PostgreSQL
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post together with all of its comments.
// Runs inside a single transaction so the delete is all-or-nothing.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
