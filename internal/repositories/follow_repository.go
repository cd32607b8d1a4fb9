package repositories

import (
	"errors"

	"github.com/antonv42/textpost/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(userID, authorID uint) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	GetFollowedAuthorIDs(userID uint) ([]uint, error)
	GetFollowersCount(authorID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow subscribes userID to authorID's posts. Creating an edge
// that already exists is a no-op, not an error.
func (r *PostgresFollowRepository) CreateFollow(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
}

// DeleteFollow removes the subscription edge. Removing an edge that does
// not exist is a no-op, not an error.
func (r *PostgresFollowRepository) DeleteFollow(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether userID is subscribed to authorID's posts
func (r *PostgresFollowRepository) IsFollowing(userID, authorID uint) (bool, error) {
	var follow models.Follow
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetFollowedAuthorIDs returns the IDs of all authors userID follows
func (r *PostgresFollowRepository) GetFollowedAuthorIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).
		Pluck("author_id", &ids).Error
	return ids, err
}

// GetFollowersCount returns how many users follow authorID
func (r *PostgresFollowRepository) GetFollowersCount(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetFollowingCount returns how many authors userID follows
func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
