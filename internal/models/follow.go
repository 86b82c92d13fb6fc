package models

import "time"

// Follow represents a directed follow edge (follower -> following).
// At most one row may exist per ordered pair; the composite unique index
// is what rejects the losing writer of a duplicate-follow race.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowStats mirrors the denormalized counters on the user row
type FollowStats struct {
	FollowerCount  int `json:"follower_count"`
	FollowingCount int `json:"following_count"`
}

// FollowStatus is the result of a point lookup on the relation table
type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
}

// Pagination carries listing metadata. TotalCount counts only resolvable,
// filter-matching joins, so HasMore must never be inferred from a full page.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasMore     bool  `json:"has_more"`
}

// FollowListResult is one page of a followers or following listing
type FollowListResult struct {
	Items      []UserSummary `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
