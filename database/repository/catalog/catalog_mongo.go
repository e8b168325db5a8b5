package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository is the narrow surface of the service-catalog and
// provider-profile collaborators that the scheduling engine reads from.
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl  *mongo.Collection
	providerColl *mongo.Collection
	userColl     *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.DB()
	return &MongoCatalogRepo{
		serviceColl:  db.Collection("services"),
		providerColl: db.Collection("providers"),
		userColl:     db.Collection("users"),
	}
}

// GetService retrieves a service catalog entry by ID.
func (repo *MongoCatalogRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var service models.Service
	if err := repo.serviceColl.FindOne(ctx, bson.M{"id": serviceID}).Decode(&service); err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", serviceID, err)
	}
	return &service, nil
}

// GetProvider retrieves a provider profile by ID.
func (repo *MongoCatalogRepo) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	if err := repo.providerColl.FindOne(ctx, bson.M{"id": providerID}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("error fetching provider %s: %w", providerID, err)
	}
	return &provider, nil
}

// GetUser retrieves a user by ID. The dispatcher uses this to resolve
// delivery targets (email address, phone number, FCM token).
func (repo *MongoCatalogRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := repo.userColl.FindOne(ctx, bson.M{"id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}
	return &user, nil
}
