package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/craftfolio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository defines the interface for portfolio project operations
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
	GetProjectsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Project, error)
	UpdateProject(ctx context.Context, projectID string, userID uint, update bson.M) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID string, userID uint) error
}

// MongoProjectRepository implements ProjectRepository for MongoDB
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a new MongoProjectRepository
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection("projects")}
}

// CreateProject creates a new portfolio project in MongoDB
func (r *MongoProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

// GetProjectByID retrieves a project by its stable project id
func (r *MongoProjectRepository) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"project_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// GetProjectsByUserID retrieves a user's projects, newest first
func (r *MongoProjectRepository) GetProjectsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Project, error) {
	var projects []models.Project
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies a partial update to a project owned by the user
func (r *MongoProjectRepository) UpdateProject(ctx context.Context, projectID string, userID uint, update bson.M) (*models.Project, error) {
	update["updated_at"] = time.Now()
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var project models.Project
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"project_id": projectID, "user_id": userID},
		bson.M{"$set": update},
		opts,
	).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project owned by the user
func (r *MongoProjectRepository) DeleteProject(ctx context.Context, projectID string, userID uint) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"project_id": projectID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project not found")
	}
	return nil
}
