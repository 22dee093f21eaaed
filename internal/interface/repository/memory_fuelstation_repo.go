package repository

import (
	"context"
	"sync"

	"fuelstation-service/internal/domain/entity"
	"fuelstation-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryFuelStationRepository is a mutex-guarded in-memory
// implementation of FuelStationRepository. It backs tests and local
// runs that have no MongoDB available, with the same contract as the
// Mongo implementation.
type MemoryFuelStationRepository struct {
	mu       sync.Mutex
	stations map[string]entity.FuelStation
	order    []string
}

// NewMemoryFuelStationRepository returns an empty in-memory repository.
func NewMemoryFuelStationRepository() *MemoryFuelStationRepository {
	return &MemoryFuelStationRepository{
		stations: make(map[string]entity.FuelStation),
	}
}

func cloneStation(s entity.FuelStation) entity.FuelStation {
	out := s
	out.Pumps = make([]entity.Pump, len(s.Pumps))
	copy(out.Pumps, s.Pumps)
	return out
}

// List returns all stations in insertion order.
func (r *MemoryFuelStationRepository) List(ctx context.Context) ([]entity.FuelStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.FuelStation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneStation(r.stations[id]))
	}
	return out, nil
}

// GetByID returns the station with the given id, or ErrNotFound.
func (r *MemoryFuelStationRepository) GetByID(ctx context.Context, id string) (*entity.FuelStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneStation(station)
	return &out, nil
}

// Create stores a new station, rejecting duplicate ids.
func (r *MemoryFuelStationRepository) Create(ctx context.Context, station *entity.FuelStation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stations[station.ID]; exists {
		return repository.ErrDuplicateID
	}

	if station.InternalID == "" {
		station.InternalID = primitive.NewObjectID().Hex()
	}

	r.stations[station.ID] = cloneStation(*station)
	r.order = append(r.order, station.ID)
	return nil
}

// UpdateName sets only the name field.
func (r *MemoryFuelStationRepository) UpdateName(ctx context.Context, id, name string) (*entity.FuelStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	station.Name = name
	r.stations[id] = station

	out := cloneStation(station)
	return &out, nil
}

// UpdatePumpPrices applies the updates in order, so a later entry
// targeting the same pump id wins, matching the Mongo implementation.
func (r *MemoryFuelStationRepository) UpdatePumpPrices(ctx context.Context, id string, updates []repository.PumpPriceUpdate) (*entity.FuelStation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	station, ok := r.stations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	station = cloneStation(station)
	for _, update := range updates {
		for i := range station.Pumps {
			if station.Pumps[i].ID == update.PumpID {
				station.Pumps[i].Price = update.Price
			}
		}
	}
	r.stations[id] = station

	out := cloneStation(station)
	return &out, nil
}

// Delete removes a station if present.
func (r *MemoryFuelStationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stations[id]; !ok {
		return nil
	}

	delete(r.stations, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
