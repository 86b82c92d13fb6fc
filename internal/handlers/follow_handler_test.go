package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/craftfolio/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
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
	if err := db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Notification{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func newTestHandler(t *testing.T) (*FollowHandler, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	svc := services.NewFollowService(db,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		zap.NewNop())
	return NewFollowHandler(svc), db
}

func seedUser(t *testing.T, db *gorm.DB, name, username string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: username, Email: username + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("creating user %q failed: %v", username, err)
	}
	return user
}

// newFollowContext builds an echo context authenticated as actorID with
// the target user id bound to the :userId path param.
func newFollowContext(t *testing.T, method, target string, actorID uint, targetParam string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues(targetParam)
	if actorID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: actorID})
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestFollowUserHandler(t *testing.T) {
	h, db := newTestHandler(t)
	alice := seedUser(t, db, "Alice", "alice")
	bob := seedUser(t, db, "Bob", "bob")

	c, rec := newFollowContext(t, http.MethodPost, "/users/follow/2", alice.ID, "2")
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("FollowUser handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			User models.UserSummary `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if !body.Success {
		t.Error("expected success envelope")
	}
	if body.Data.User.ID != bob.ID {
		t.Errorf("response user = %d, want %d", body.Data.User.ID, bob.ID)
	}
	if body.Data.User.FollowerCount != 1 {
		t.Errorf("response follower count = %d, want 1", body.Data.User.FollowerCount)
	}
}

func TestFollowUserHandlerErrors(t *testing.T) {
	h, db := newTestHandler(t)
	alice := seedUser(t, db, "Alice", "alice")
	seedUser(t, db, "Bob", "bob")

	c, _ := newFollowContext(t, http.MethodPost, "/users/follow/2", alice.ID, "2")
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("initial follow failed: %v", err)
	}

	tests := []struct {
		name        string
		actorID     uint
		targetParam string
		wantStatus  int
	}{
		{"duplicate follow", alice.ID, "2", http.StatusConflict},
		{"self follow", alice.ID, "1", http.StatusBadRequest},
		{"missing target", alice.ID, "9999", http.StatusNotFound},
		{"bad id param", alice.ID, "abc", http.StatusBadRequest},
		{"unauthenticated", 0, "2", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newFollowContext(t, http.MethodPost, "/users/follow/"+tt.targetParam, tt.actorID, tt.targetParam)
			err := h.FollowUser(c)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := httpStatus(t, err); got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestUnfollowUserHandler(t *testing.T) {
	h, db := newTestHandler(t)
	alice := seedUser(t, db, "Alice", "alice")
	seedUser(t, db, "Bob", "bob")

	// unfollow without a relation
	c, _ := newFollowContext(t, http.MethodPost, "/users/unfollow/2", alice.ID, "2")
	err := h.UnfollowUser(c)
	if got := httpStatus(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}

	c, _ = newFollowContext(t, http.MethodPost, "/users/follow/2", alice.ID, "2")
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	c, rec := newFollowContext(t, http.MethodPost, "/users/unfollow/2", alice.ID, "2")
	if err := h.UnfollowUser(c); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGetFollowersHandler(t *testing.T) {
	h, db := newTestHandler(t)
	seedUser(t, db, "Target", "target")
	fan := seedUser(t, db, "Fan", "fan")

	c, _ := newFollowContext(t, http.MethodPost, "/users/follow/1", fan.ID, "1")
	if err := h.FollowUser(c); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	c, rec := newFollowContext(t, http.MethodGet, "/users/1/followers?page=1&limit=10", 0, "1")
	if err := h.GetFollowers(c); err != nil {
		t.Fatalf("GetFollowers failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Success bool                    `json:"success"`
		Data    models.FollowListResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if len(body.Data.Items) != 1 || body.Data.Items[0].ID != fan.ID {
		t.Errorf("items = %+v, want the single follower %d", body.Data.Items, fan.ID)
	}
	if body.Data.Pagination.TotalCount != 1 {
		t.Errorf("total count = %d, want 1", body.Data.Pagination.TotalCount)
	}

	// unknown user maps to 404
	c, _ = newFollowContext(t, http.MethodGet, "/users/9999/followers", 0, "9999")
	err := h.GetFollowers(c)
	if got := httpStatus(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestCheckFollowStatusHandler(t *testing.T) {
	h, db := newTestHandler(t)
	alice := seedUser(t, db, "Alice", "alice")
	seedUser(t, db, "Bob", "bob")

	c, rec := newFollowContext(t, http.MethodGet, "/users/2/follow-status", alice.ID, "2")
	if err := h.CheckFollowStatus(c); err != nil {
		t.Fatalf("CheckFollowStatus failed: %v", err)
	}
	var body struct {
		Data models.FollowStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if body.Data.IsFollowing {
		t.Error("expected is_following to be false")
	}
}
