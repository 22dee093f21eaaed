package repository

import (
	"context"
	"errors"

	"fuelstation-service/internal/domain/entity"
)

// Store signals returned by every FuelStationRepository implementation.
var (
	// ErrNotFound means no station matched the given id. Absence is an
	// expected outcome, not a failure; callers check with errors.Is.
	ErrNotFound = errors.New("fuel station not found")

	// ErrDuplicateID means a create collided with the unique index on id.
	ErrDuplicateID = errors.New("fuel station id already exists")
)

// PumpPriceUpdate targets one pump within a station by its pump id.
type PumpPriceUpdate struct {
	PumpID int
	Price  float64
}

// FuelStationRepository owns all persistence for fuel stations.
type FuelStationRepository interface {
	// List returns every station in store order. An empty store yields
	// an empty slice, never an error.
	List(ctx context.Context) ([]entity.FuelStation, error)

	// GetByID returns the station with the given external id, or
	// ErrNotFound.
	GetByID(ctx context.Context, id string) (*entity.FuelStation, error)

	// Create persists a new station and fills in its InternalID.
	// Returns ErrDuplicateID when the id is already taken.
	Create(ctx context.Context, station *entity.FuelStation) error

	// UpdateName sets only the name field and returns the post-update
	// station, or ErrNotFound.
	UpdateName(ctx context.Context, id, name string) (*entity.FuelStation, error)

	// UpdatePumpPrices sets the price of each pump matched by id,
	// leaving every other pump field untouched. Updates naming pump ids
	// absent from the station are silent no-ops. Returns the
	// post-update station, or ErrNotFound.
	UpdatePumpPrices(ctx context.Context, id string, updates []PumpPriceUpdate) (*entity.FuelStation, error)

	// Delete removes the station if present; deleting a missing id is
	// not an error.
	Delete(ctx context.Context, id string) error
}
