package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftfolio/backend/internal/models"
	"github.com/craftfolio/backend/internal/repositories"
	"github.com/craftfolio/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func newUserTestHandler(t *testing.T) (*UserHandler, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewUserHandler(repositories.NewPostgresUserRepository(db)), db
}

// newJSONContext builds an authenticated echo context carrying a JSON body
// and the request validator.
func newJSONContext(t *testing.T, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

func TestAccountSetupFlow(t *testing.T) {
	h, db := newUserTestHandler(t)
	user := seedUser(t, db, "Alice", "alice")

	// design niche before personal info is rejected
	c, _ := newJSONContext(t, http.MethodPost, "/users/design-niche",
		`{"design_niche_tags":["branding"]}`, user.ID)
	err := h.UpdateDesignNiche(c)
	if got := httpStatus(t, err); got != http.StatusBadRequest {
		t.Errorf("out-of-order step status = %d, want %d", got, http.StatusBadRequest)
	}

	// completion before the steps is rejected
	c, _ = newJSONContext(t, http.MethodPost, "/users/complete", "", user.ID)
	err = h.CompleteSetup(c)
	if got := httpStatus(t, err); got != http.StatusBadRequest {
		t.Errorf("early completion status = %d, want %d", got, http.StatusBadRequest)
	}

	// step 1
	c, rec := newJSONContext(t, http.MethodPost, "/users/personal-info",
		`{"name":"Alice","bio_tagline":"Brand designer","gender":"Female","dob":"1995-04-12"}`, user.ID)
	if err := h.UpdatePersonalInfo(c); err != nil {
		t.Fatalf("UpdatePersonalInfo failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// step 2
	c, _ = newJSONContext(t, http.MethodPost, "/users/design-niche",
		`{"design_niche_tags":["branding","typography"]}`, user.ID)
	if err := h.UpdateDesignNiche(c); err != nil {
		t.Fatalf("UpdateDesignNiche failed: %v", err)
	}

	// step 3
	c, _ = newJSONContext(t, http.MethodPost, "/users/complete", "", user.ID)
	if err := h.CompleteSetup(c); err != nil {
		t.Fatalf("CompleteSetup failed: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.IsAccountSetupComplete {
		t.Error("account should be marked complete")
	}
	if reloaded.AccountSetupStep != 3 {
		t.Errorf("setup step = %d, want 3", reloaded.AccountSetupStep)
	}
	if reloaded.DesignNicheTags != "branding,typography" {
		t.Errorf("design niche tags = %q, want %q", reloaded.DesignNicheTags, "branding,typography")
	}
}

func TestUpdatePersonalInfoValidation(t *testing.T) {
	h, db := newUserTestHandler(t)
	user := seedUser(t, db, "Alice", "alice")

	c, _ := newJSONContext(t, http.MethodPost, "/users/personal-info",
		`{"name":"A","bio_tagline":"","gender":"unknown","dob":""}`, user.ID)
	err := h.UpdatePersonalInfo(c)
	if got := httpStatus(t, err); got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestEditProfilePartialUpdate(t *testing.T) {
	h, db := newUserTestHandler(t)
	user := seedUser(t, db, "Alice", "alice")
	user.BioTagline = "Original tagline"
	user.Location = "Berlin"
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("saving user failed: %v", err)
	}

	c, _ := newJSONContext(t, http.MethodPut, "/users/edit-profile",
		`{"location":"Lisbon","social_links":{"twitter":"https://twitter.com/alice"}}`, user.ID)
	if err := h.EditProfile(c); err != nil {
		t.Fatalf("EditProfile failed: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Location != "Lisbon" {
		t.Errorf("location = %q, want %q", reloaded.Location, "Lisbon")
	}
	if reloaded.SocialLinks.Twitter != "https://twitter.com/alice" {
		t.Errorf("twitter link = %q", reloaded.SocialLinks.Twitter)
	}
	// untouched fields survive
	if reloaded.BioTagline != "Original tagline" {
		t.Errorf("bio tagline = %q, want unchanged", reloaded.BioTagline)
	}
	if reloaded.Name != "Alice" {
		t.Errorf("name = %q, want unchanged", reloaded.Name)
	}
}

func TestGetUserPublicProfile(t *testing.T) {
	h, db := newUserTestHandler(t)
	user := seedUser(t, db, "Alice", "alice")
	user.Password = "hashed-secret"
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("saving user failed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("1")

	if err := h.GetUser(c); err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}

	var body struct {
		Data struct {
			User models.UserSummary `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if body.Data.User.Username != "alice" {
		t.Errorf("username = %q, want %q", body.Data.User.Username, "alice")
	}
	if strings.Contains(rec.Body.String(), "hashed-secret") {
		t.Error("public profile leaked the password hash")
	}

	// unknown user
	c2, _ := newJSONContext(t, http.MethodGet, "/users/9999", "", 0)
	c2.SetParamNames("userId")
	c2.SetParamValues("9999")
	err := h.GetUser(c2)
	if got := httpStatus(t, err); got != http.StatusNotFound {
		t.Errorf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestGetSetupStatusUnauthenticated(t *testing.T) {
	h, _ := newUserTestHandler(t)
	c, _ := newJSONContext(t, http.MethodGet, "/users/status", "", 0)
	err := h.GetSetupStatus(c)
	if got := httpStatus(t, err); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", got, http.StatusUnauthorized)
	}
}
