package repository

import (
	"context"
	"fmt"

	"fuelstation-service/internal/domain/entity"
	"fuelstation-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFuelStationRepository implements FuelStationRepository on a
// MongoDB collection.
type MongoFuelStationRepository struct {
	collection *mongo.Collection
}

// NewMongoFuelStationRepository creates a new fuel station repository
// over the "fuelStation" collection.
func NewMongoFuelStationRepository(db *mongo.Database) *MongoFuelStationRepository {
	return &MongoFuelStationRepository{
		collection: db.Collection("fuelStation"),
	}
}

// EnsureIndexes creates the unique index on the external station id.
// Index creation is idempotent, so concurrent or repeated calls are
// safe. Run once at startup before serving traffic.
func (r *MongoFuelStationRepository) EnsureIndexes(ctx context.Context) error {
	idIndex := mongo.IndexModel{
		Keys:    bson.M{"id": 1},
		Options: options.Index().SetUnique(true),
	}

	if _, err := r.collection.Indexes().CreateOne(ctx, idIndex); err != nil {
		return fmt.Errorf("failed to create id index: %w", err)
	}
	return nil
}

// List returns all stations in store order.
func (r *MongoFuelStationRepository) List(ctx context.Context) ([]entity.FuelStation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stations := []entity.FuelStation{}
	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

// GetByID finds a station by its external id.
func (r *MongoFuelStationRepository) GetByID(ctx context.Context, id string) (*entity.FuelStation, error) {
	var station entity.FuelStation
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&station)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// Create inserts a new station. The unique index on id turns duplicate
// creates into ErrDuplicateID.
func (r *MongoFuelStationRepository) Create(ctx context.Context, station *entity.FuelStation) error {
	if station.InternalID == "" {
		station.InternalID = primitive.NewObjectID().Hex()
	}

	_, err := r.collection.InsertOne(ctx, station)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// UpdateName sets only the name field and returns the updated document.
func (r *MongoFuelStationRepository) UpdateName(ctx context.Context, id, name string) (*entity.FuelStation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var station entity.FuelStation
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"name": name}},
		opts,
	).Decode(&station)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &station, nil
}

// UpdatePumpPrices sets the price of each targeted pump in one atomic
// update, using one array filter per requested pump id. Pump ids with
// no matching pump simply match nothing.
func (r *MongoFuelStationRepository) UpdatePumpPrices(ctx context.Context, id string, updates []repository.PumpPriceUpdate) (*entity.FuelStation, error) {
	// An empty $set is rejected by the server.
	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	setOps := bson.M{}
	arrayFilters := make([]interface{}, 0, len(updates))

	for i, update := range updates {
		identifier := fmt.Sprintf("pump%d", i)
		setOps[fmt.Sprintf("pumps.$[%s].price", identifier)] = update.Price
		arrayFilters = append(arrayFilters, bson.M{identifier + ".id": update.PumpID})
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetArrayFilters(options.ArrayFilters{Filters: arrayFilters})

	var station entity.FuelStation
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": setOps},
		opts,
	).Decode(&station)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &station, nil
}

// Delete removes a station by id. Deleting a missing id is a no-op.
func (r *MongoFuelStationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	return err
}
