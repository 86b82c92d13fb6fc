package repositories

import (
	"github.com/craftfolio/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
// Counter mutations take the active transaction handle explicitly so they
// can only run inside the follow/unfollow transaction boundary.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	Exists(id uint) (bool, error)
	IncrementFollowerCount(tx *gorm.DB, id uint) error
	IncrementFollowingCount(tx *gorm.DB, id uint) error
	DecrementFollowerCount(tx *gorm.DB, id uint) (int64, error)
	DecrementFollowingCount(tx *gorm.DB, id uint) (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username from PostgreSQL
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteUser soft-deletes a user by ID from PostgreSQL
func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// Exists reports whether a live user row exists for the ID
func (r *PostgresUserRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementFollowerCount bumps follower_count inside the given transaction
func (r *PostgresUserRepository) IncrementFollowerCount(tx *gorm.DB, id uint) error {
	return tx.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error
}

// IncrementFollowingCount bumps following_count inside the given transaction
func (r *PostgresUserRepository) IncrementFollowingCount(tx *gorm.DB, id uint) error {
	return tx.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
}

// DecrementFollowerCount lowers follower_count inside the given transaction.
// The `> 0` predicate keeps the counter from going negative; zero rows
// affected means it was already at the floor.
func (r *PostgresUserRepository) DecrementFollowerCount(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&models.User{}).Where("id = ? AND follower_count > 0", id).
		UpdateColumn("follower_count", gorm.Expr("follower_count - 1"))
	return res.RowsAffected, res.Error
}

// DecrementFollowingCount lowers following_count inside the given transaction
func (r *PostgresUserRepository) DecrementFollowingCount(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&models.User{}).Where("id = ? AND following_count > 0", id).
		UpdateColumn("following_count", gorm.Expr("following_count - 1"))
	return res.RowsAffected, res.Error
}
