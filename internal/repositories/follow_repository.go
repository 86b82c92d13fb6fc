package repositories

import (
	"strings"

	"github.com/craftfolio/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations.
// CreateFollow and DeleteFollow take the active transaction handle so the
// relation row can only move together with the paired counter updates.
type FollowRepository interface {
	CreateFollow(tx *gorm.DB, follow *models.Follow) error
	DeleteFollow(tx *gorm.DB, followerID, followingID uint) (int64, error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowerPage(userID uint, offset, limit int) ([]models.Follow, error)
	GetFollowingPage(userID uint, offset, limit int) ([]models.Follow, error)
	CountFollowers(userID uint, search string) (int64, error)
	CountFollowing(userID uint, search string) (int64, error)
	GetUsersByIDs(ids []uint, search string) (map[uint]models.User, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(tx *gorm.DB, follow *models.Follow) error {
	return tx.Create(follow).Error
}

// DeleteFollow hard-deletes the relation row and reports rows affected
func (r *PostgresFollowRepository) DeleteFollow(tx *gorm.DB, followerID, followingID uint) (int64, error) {
	res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowerPage returns one database-level page of relations where the
// user is the one being followed, most recent first. Timestamp collisions
// fall back to row id ascending so paging stays deterministic.
func (r *PostgresFollowRepository) GetFollowerPage(userID uint, offset, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("following_id = ?", userID).
		Order("created_at DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&follows).Error
	return follows, err
}

// GetFollowingPage returns one database-level page of relations where the
// user is the follower, most recent first
func (r *PostgresFollowRepository) GetFollowingPage(userID uint, offset, limit int) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("follower_id = ?", userID).
		Order("created_at DESC, id ASC").
		Offset(offset).Limit(limit).
		Find(&follows).Error
	return follows, err
}

// CountFollowers counts relations whose follower still resolves to a live
// user and matches the optional search text. A bare COUNT on the relation
// table would overstate the total whenever a filter is active or a
// referenced user was deleted.
func (r *PostgresFollowRepository) CountFollowers(userID uint, search string) (int64, error) {
	return r.countJoined("follower_id", "following_id", userID, search)
}

// CountFollowing counts relations whose followee still resolves to a live
// user and matches the optional search text
func (r *PostgresFollowRepository) CountFollowing(userID uint, search string) (int64, error) {
	return r.countJoined("following_id", "follower_id", userID, search)
}

func (r *PostgresFollowRepository) countJoined(joinCol, fixedCol string, userID uint, search string) (int64, error) {
	var count int64
	q := r.db.Model(&models.Follow{}).
		Joins("JOIN users ON users.id = follows."+joinCol+" AND users.deleted_at IS NULL").
		Where("follows."+fixedCol+" = ?", userID)
	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(users.name) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(users.bio_tagline) LIKE ?",
			pattern, pattern, pattern)
	}
	err := q.Count(&count).Error
	return count, err
}

// GetUsersByIDs resolves relation rows to live users, applying the optional
// case-insensitive search over name, username and bio tagline. Users that
// were deleted or fail the filter are simply absent from the result.
func (r *PostgresFollowRepository) GetUsersByIDs(ids []uint, search string) (map[uint]models.User, error) {
	if len(ids) == 0 {
		return map[uint]models.User{}, nil
	}
	q := r.db.Where("id IN ?", ids)
	if s := strings.TrimSpace(search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(bio_tagline) LIKE ?",
			pattern, pattern, pattern)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
