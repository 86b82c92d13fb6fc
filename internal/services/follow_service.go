package services

import (
	"errors"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize is used when the caller does not specify a limit
	DefaultPageSize = 20
	// MaxPageSize caps the per-page limit to prevent unbounded scans
	MaxPageSize = 100
)

// FollowService coordinates follow/unfollow mutations and the paginated,
// searchable follower/following listings. Each mutation runs its relation
// write and both counter updates inside one database transaction; the
// counters never move except in lockstep with the relation table.
type FollowService struct {
	db            *gorm.DB
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

// NewFollowService creates a new FollowService. The notification repository
// may be nil; follow notifications are best-effort.
func NewFollowService(db *gorm.DB, users repositories.UserRepository, follows repositories.FollowRepository, notifications repositories.NotificationRepository, logger *zap.Logger) *FollowService {
	return &FollowService{
		db:            db,
		users:         users,
		follows:       follows,
		notifications: notifications,
		logger:        logger,
	}
}

// FollowUser creates the follow relation and increments both denormalized
// counters atomically, returning the target's updated public projection.
// A second call for the same pair fails with ErrAlreadyFollowing; under a
// race the composite unique index rejects the losing writer and its
// transaction rolls back with no counter movement.
func (s *FollowService) FollowUser(followerID, targetID uint) (*models.UserSummary, error) {
	if followerID == targetID {
		return nil, ErrInvalidOperation
	}

	follower, err := s.users.GetUserByID(followerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isFollowing, err := s.follows.IsFollowing(followerID, targetID)
	if err != nil {
		return nil, err
	}
	if isFollowing {
		return nil, ErrAlreadyFollowing
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		follow := &models.Follow{FollowerID: followerID, FollowingID: targetID}
		if err := s.follows.CreateFollow(tx, follow); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFollowing
			}
			return err
		}
		if err := s.users.IncrementFollowingCount(tx, followerID); err != nil {
			return err
		}
		return s.users.IncrementFollowerCount(tx, targetID)
	})
	if err != nil {
		return nil, err
	}

	s.notifyFollow(follower, targetID)

	target, err := s.users.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	summary := target.Summary()
	return &summary, nil
}

// UnfollowUser deletes the follow relation and decrements both counters
// atomically. The decrements carry a floor guard; hitting it means the
// counter drifted from the relation table, which is logged and never
// surfaced to the caller.
func (s *FollowService) UnfollowUser(followerID, targetID uint) (*models.UserSummary, error) {
	if followerID == targetID {
		return nil, ErrInvalidOperation
	}

	isFollowing, err := s.follows.IsFollowing(followerID, targetID)
	if err != nil {
		return nil, err
	}
	if !isFollowing {
		return nil, ErrNotFollowing
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := s.follows.DeleteFollow(tx, followerID, targetID)
		if err != nil {
			return err
		}
		if rows == 0 {
			// a concurrent unfollow got there first
			return ErrNotFollowing
		}
		rows, err = s.users.DecrementFollowingCount(tx, followerID)
		if err != nil {
			return err
		}
		if rows == 0 {
			s.logger.Error("following_count underflow",
				zap.Uint("user_id", followerID), zap.Uint("target_id", targetID))
		}
		rows, err = s.users.DecrementFollowerCount(tx, targetID)
		if err != nil {
			return err
		}
		if rows == 0 {
			s.logger.Error("follower_count underflow",
				zap.Uint("user_id", targetID), zap.Uint("actor_id", followerID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// relation cleanup on a deleted user still succeeds
			return nil, nil
		}
		return nil, err
	}
	summary := target.Summary()
	return &summary, nil
}

// ListFollowers returns one page of the users following userID, most recent
// first, optionally filtered by a case-insensitive search over name,
// username and bio tagline.
func (s *FollowService) ListFollowers(userID uint, page, pageSize int, search string) (*models.FollowListResult, error) {
	return s.listPage(userID, page, pageSize, search, true)
}

// ListFollowing returns one page of the users userID follows
func (s *FollowService) ListFollowing(userID uint, page, pageSize int, search string) (*models.FollowListResult, error) {
	return s.listPage(userID, page, pageSize, search, false)
}

// listPage applies offset/limit on the relation table first, then joins
// each row to a live user with the search filter. Orphaned or filtered
// joins are dropped after the limit, so a page may hold fewer than
// pageSize items without meaning the end of results; HasMore comes from
// the parallel filtered count, never from page fullness.
func (s *FollowService) listPage(userID uint, page, pageSize int, search string, followers bool) (*models.FollowListResult, error) {
	exists, err := s.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	offset := (page - 1) * pageSize

	var follows []models.Follow
	var total int64
	if followers {
		follows, err = s.follows.GetFollowerPage(userID, offset, pageSize)
	} else {
		follows, err = s.follows.GetFollowingPage(userID, offset, pageSize)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		if followers {
			ids = append(ids, f.FollowerID)
		} else {
			ids = append(ids, f.FollowingID)
		}
	}
	usersByID, err := s.follows.GetUsersByIDs(ids, search)
	if err != nil {
		return nil, err
	}

	items := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := usersByID[id]; ok {
			items = append(items, u.Summary())
		}
	}

	if followers {
		total, err = s.follows.CountFollowers(userID, search)
	} else {
		total, err = s.follows.CountFollowing(userID, search)
	}
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.FollowListResult{
		Items: items,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasMore:     int64(offset+len(items)) < total,
		},
	}, nil
}

// CheckFollowStatus is a pure point lookup on the relation table. A
// non-existent target simply yields false.
func (s *FollowService) CheckFollowStatus(currentUserID, targetUserID uint) (*models.FollowStatus, error) {
	isFollowing, err := s.follows.IsFollowing(currentUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	return &models.FollowStatus{IsFollowing: isFollowing}, nil
}

// GetFollowStats reads the denormalized counters off the user row rather
// than recomputing from the relation table.
func (s *FollowService) GetFollowStats(userID uint) (*models.FollowStats, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &models.FollowStats{
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
	}, nil
}

func (s *FollowService) notifyFollow(actor *models.User, recipientID uint) {
	if s.notifications == nil {
		return
	}
	name := actor.Name
	if name == "" {
		name = actor.Username
	}
	notif := &models.Notification{
		Type:        "follow",
		ActorID:     actor.ID,
		RecipientID: recipientID,
		Message:     name + " started following you",
	}
	if err := s.notifications.CreateNotification(notif); err != nil {
		s.logger.Warn("failed to create follow notification",
			zap.Uint("actor_id", actor.ID), zap.Uint("recipient_id", recipientID), zap.Error(err))
	}
}
