package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/craftfolio/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening database failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, username string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: username, Email: username + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %q failed: %v", username, err)
	}
	return user
}

func TestCreateFollowDuplicateKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	a := seedUser(t, db, "A", "a")
	b := seedUser(t, db, "B", "b")

	if err := repo.CreateFollow(db, &models.Follow{FollowerID: a.ID, FollowingID: b.ID}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.CreateFollow(db, &models.Follow{FollowerID: a.ID, FollowingID: b.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate create error = %v, want gorm.ErrDuplicatedKey", err)
	}

	// the same pair reversed is a distinct relation
	if err := repo.CreateFollow(db, &models.Follow{FollowerID: b.ID, FollowingID: a.ID}); err != nil {
		t.Errorf("reverse create failed: %v", err)
	}
}

func TestFollowerPageOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	target := seedUser(t, db, "Target", "target")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	old := seedUser(t, db, "Old", "old")
	mid := seedUser(t, db, "Mid", "mid")
	recent := seedUser(t, db, "Recent", "recent")
	rows := []models.Follow{
		{FollowerID: old.ID, FollowingID: target.ID, CreatedAt: base},
		{FollowerID: mid.ID, FollowingID: target.ID, CreatedAt: base.Add(time.Hour)},
		{FollowerID: recent.ID, FollowingID: target.ID, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seeding follow %d failed: %v", i, err)
		}
	}

	page, err := repo.GetFollowerPage(target.ID, 0, 10)
	if err != nil {
		t.Fatalf("GetFollowerPage failed: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("page length = %d, want 3", len(page))
	}
	want := []uint{recent.ID, mid.ID, old.ID}
	for i, f := range page {
		if f.FollowerID != want[i] {
			t.Errorf("position %d follower = %d, want %d", i, f.FollowerID, want[i])
		}
	}

	// offset skips the newest rows
	tail, err := repo.GetFollowerPage(target.ID, 2, 10)
	if err != nil {
		t.Fatalf("GetFollowerPage with offset failed: %v", err)
	}
	if len(tail) != 1 || tail[0].FollowerID != old.ID {
		t.Errorf("offset page = %+v, want only the oldest follower", tail)
	}
}

func TestCountFollowersExcludesDeletedAndFiltered(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	target := seedUser(t, db, "Target", "target")
	alice := seedUser(t, db, "Alice", "alice")
	bob := seedUser(t, db, "Bob", "bob")

	for _, u := range []*models.User{alice, bob} {
		if err := repo.CreateFollow(db, &models.Follow{FollowerID: u.ID, FollowingID: target.ID}); err != nil {
			t.Fatalf("seeding follow failed: %v", err)
		}
	}

	count, err := repo.CountFollowers(target.ID, "")
	if err != nil {
		t.Fatalf("CountFollowers failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = repo.CountFollowers(target.ID, "ALICE")
	if err != nil {
		t.Fatalf("CountFollowers with search failed: %v", err)
	}
	if count != 1 {
		t.Errorf("filtered count = %d, want 1", count)
	}

	if err := db.Delete(&models.User{}, bob.ID).Error; err != nil {
		t.Fatalf("deleting bob failed: %v", err)
	}
	count, err = repo.CountFollowers(target.ID, "")
	if err != nil {
		t.Fatalf("CountFollowers after delete failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count after delete = %d, want 1 (deleted follower excluded)", count)
	}
}

func TestDecrementCounterFloor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	user := seedUser(t, db, "A", "a")

	if err := repo.IncrementFollowerCount(db, user.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	rows, err := repo.DecrementFollowerCount(db, user.ID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows affected = %d, want 1", rows)
	}

	// at zero the guard leaves the row untouched
	rows, err = repo.DecrementFollowerCount(db, user.ID)
	if err != nil {
		t.Fatalf("decrement at floor failed: %v", err)
	}
	if rows != 0 {
		t.Errorf("rows affected at floor = %d, want 0", rows)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.FollowerCount != 0 {
		t.Errorf("follower count = %d, want 0", reloaded.FollowerCount)
	}
}

func TestGetUsersByIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "Alice", "alice")
	bob := seedUser(t, db, "Bob", "bob")

	byID, err := repo.GetUsersByIDs([]uint{alice.ID, bob.ID, 9999}, "")
	if err != nil {
		t.Fatalf("GetUsersByIDs failed: %v", err)
	}
	if len(byID) != 2 {
		t.Errorf("resolved %d users, want 2", len(byID))
	}
	if _, ok := byID[9999]; ok {
		t.Error("unknown id should not resolve")
	}

	byID, err = repo.GetUsersByIDs(nil, "")
	if err != nil {
		t.Fatalf("GetUsersByIDs with no ids failed: %v", err)
	}
	if len(byID) != 0 {
		t.Errorf("resolved %d users for empty input, want 0", len(byID))
	}
}
