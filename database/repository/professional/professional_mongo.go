package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velora/database"
	"velora/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound means the requested professional or offering does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidConfig means the professional's stored setup cannot support
// scheduling (malformed working hours, missing timezone). The fault lies with
// the professional's configuration, not with the request.
var ErrInvalidConfig = errors.New("professional configuration invalid")

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	professionalColl *mongo.Collection
	offeringColl     *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new instance of MongoProfessionalRepo.
func NewMongoProfessionalRepo() ProfessionalRepository {
	db := database.MongoClient.Database("velora")
	return &MongoProfessionalRepo{
		professionalColl: db.Collection("professionals"),
		offeringColl:     db.Collection("offerings"),
	}
}

// GetByID retrieves a professional and validates each location's working
// hours once, here at the read boundary. A malformed schedule surfaces as a
// configuration fault naming the professional, not as a request error.
func (repo *MongoProfessionalRepo) GetByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var professional models.Professional
	if err := repo.professionalColl.FindOne(ctx, bson.M{"id": professionalID}).Decode(&professional); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching professional %s: %w", professionalID, err)
	}

	for lt, loc := range professional.Locations {
		if !loc.HoursSet {
			continue
		}
		if err := loc.Hours.Validate(); err != nil {
			return nil, fmt.Errorf("%w: professional %s has invalid %s working hours: %v", ErrInvalidConfig, professionalID, lt, err)
		}
	}
	return &professional, nil
}

func (repo *MongoProfessionalRepo) GetOffering(ctx context.Context, offeringID string) (*models.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var offering models.Offering
	if err := repo.offeringColl.FindOne(ctx, bson.M{"id": offeringID}).Decode(&offering); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching offering %s: %w", offeringID, err)
	}
	return &offering, nil
}

// GetLastMinuteSettings returns the professional's last-minute configuration,
// or a zero-valued disabled snapshot when none is stored.
func (repo *MongoProfessionalRepo) GetLastMinuteSettings(ctx context.Context, professionalID string) (*models.LastMinuteSettings, error) {
	professional, err := repo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if professional.LastMinute == nil {
		return &models.LastMinuteSettings{}, nil
	}
	return professional.LastMinute, nil
}
