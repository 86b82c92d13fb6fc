package repositories

import (
	"github.com/craftfolio/backend/internal/models"
	"gorm.io/gorm"
)

// ExperienceRepository defines the interface for experience/education data operations
type ExperienceRepository interface {
	GetExperienceByUserID(userID uint) ([]models.Experience, error)
	GetExperienceByID(id, userID uint) (*models.Experience, error)
	CreateExperience(experience *models.Experience) error
	UpdateExperience(experience *models.Experience) error
	DeleteExperience(id, userID uint) (int64, error)

	GetEducationByUserID(userID uint) ([]models.Education, error)
	GetEducationByID(id, userID uint) (*models.Education, error)
	CreateEducation(education *models.Education) error
	UpdateEducation(education *models.Education) error
	DeleteEducation(id, userID uint) (int64, error)
}

// PostgresExperienceRepository implements ExperienceRepository for PostgreSQL
type PostgresExperienceRepository struct {
	db *gorm.DB
}

// NewPostgresExperienceRepository creates a new PostgresExperienceRepository
func NewPostgresExperienceRepository(db *gorm.DB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{db: db}
}

func (r *PostgresExperienceRepository) GetExperienceByUserID(userID uint) ([]models.Experience, error) {
	var experience []models.Experience
	err := r.db.Where("user_id = ?", userID).Order("started_in DESC").Find(&experience).Error
	return experience, err
}

func (r *PostgresExperienceRepository) GetExperienceByID(id, userID uint) (*models.Experience, error) {
	var experience models.Experience
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&experience).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *PostgresExperienceRepository) CreateExperience(experience *models.Experience) error {
	return r.db.Create(experience).Error
}

func (r *PostgresExperienceRepository) UpdateExperience(experience *models.Experience) error {
	return r.db.Save(experience).Error
}

func (r *PostgresExperienceRepository) DeleteExperience(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Experience{})
	return res.RowsAffected, res.Error
}

func (r *PostgresExperienceRepository) GetEducationByUserID(userID uint) ([]models.Education, error) {
	var education []models.Education
	err := r.db.Where("user_id = ?", userID).Order("started_in DESC").Find(&education).Error
	return education, err
}

func (r *PostgresExperienceRepository) GetEducationByID(id, userID uint) (*models.Education, error) {
	var education models.Education
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&education).Error; err != nil {
		return nil, err
	}
	return &education, nil
}

func (r *PostgresExperienceRepository) CreateEducation(education *models.Education) error {
	return r.db.Create(education).Error
}

func (r *PostgresExperienceRepository) UpdateEducation(education *models.Education) error {
	return r.db.Save(education).Error
}

func (r *PostgresExperienceRepository) DeleteEducation(id, userID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Education{})
	return res.RowsAffected, res.Error
}
