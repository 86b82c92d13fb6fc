package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// SocialLinks holds the user's external social profiles
type SocialLinks struct {
	LinkedIn  string `json:"linkedIn,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type User struct {
	gorm.Model   `json:"-"`
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name"`
	Username     string     `json:"username" gorm:"uniqueIndex"`
	Email        string     `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password     string     `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Provider     string     `json:"provider" gorm:"size:20;default:local"`
	FirebaseUID  string     `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID (google/apple providers)
	ProfilePhoto string     `json:"profile_photo,omitempty"`
	BioTagline   string     `json:"bio_tagline,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Location     string     `json:"location,omitempty"`
	Gender       string     `json:"gender,omitempty" gorm:"size:10"`
	DOB          *time.Time `json:"dob,omitempty"`

	SocialLinks     SocialLinks `json:"social_links" gorm:"embedded;embeddedPrefix:social_"`
	DesignNicheTags string      `json:"design_niche_tags,omitempty"` // comma-separated list

	TotalProfileViews int `json:"total_profile_views" gorm:"default:0"`
	FollowerCount     int `json:"follower_count" gorm:"default:0"`
	FollowingCount    int `json:"following_count" gorm:"default:0"`

	IsAccountSetupComplete bool `json:"is_account_setup_complete" gorm:"default:false"`
	AccountSetupStep       int  `json:"account_setup_step" gorm:"default:0"`

	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// UserSummary is the public projection returned by follow operations and listings
type UserSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePhoto   string `json:"profile_photo,omitempty"`
	BioTagline     string `json:"bio_tagline,omitempty"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

// Summary projects the user into its public shape
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePhoto:   u.ProfilePhoto,
		BioTagline:     u.BioTagline,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest provisions a local user from a verified Firebase ID token
type FirebaseLoginRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Provider string `json:"provider" validate:"required,oneof=google apple"`
}

type PersonalInfoRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=50"`
	BioTagline   string `json:"bio_tagline" validate:"required,max=150"`
	Gender       string `json:"gender" validate:"required,oneof=Male Female Other"`
	DOB          string `json:"dob" validate:"required"` // ISO date string
	ProfilePhoto string `json:"profile_photo,omitempty" validate:"omitempty,url"`
}

type DesignNicheRequest struct {
	DesignNicheTags []string `json:"design_niche_tags" validate:"required,min=1,dive,min=1,max=40"`
}

type EditProfileRequest struct {
	Name            *string      `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	BioTagline      *string      `json:"bio_tagline,omitempty" validate:"omitempty,max=150"`
	Summary         *string      `json:"summary,omitempty" validate:"omitempty,max=2000"`
	Location        *string      `json:"location,omitempty" validate:"omitempty,max=100"`
	Gender          *string      `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	DOB             *string      `json:"dob,omitempty"`
	ProfilePhoto    *string      `json:"profile_photo,omitempty" validate:"omitempty,url"`
	SocialLinks     *SocialLinks `json:"social_links,omitempty"`
	DesignNicheTags []string     `json:"design_niche_tags,omitempty" validate:"omitempty,dive,min=1,max=40"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
