package entity

// FuelType identifies the kind of fuel a pump dispenses.
type FuelType string

const (
	FuelTypeBenzin95 FuelType = "BENZIN_95"
	FuelTypeBenzin98 FuelType = "BENZIN_98"
	FuelTypeDiesel   FuelType = "DIESEL"
)

// FuelTypes lists every accepted fuel type.
var FuelTypes = []FuelType{FuelTypeBenzin95, FuelTypeBenzin98, FuelTypeDiesel}

// Valid reports whether f is one of the known fuel types.
func (f FuelType) Valid() bool {
	switch f {
	case FuelTypeBenzin95, FuelTypeBenzin98, FuelTypeDiesel:
		return true
	}
	return false
}

// Pump is a single fuel dispenser embedded in a station. Pump ids are
// unique within their owning station only.
type Pump struct {
	ID        int      `bson:"id" json:"id"`
	FuelType  FuelType `bson:"fuel_type" json:"fuel_type"`
	Price     float64  `bson:"price" json:"price"`
	Available bool     `bson:"available" json:"available"`
}

// FuelStation is the root entity. ID is externally assigned and unique
// across the collection; InternalID is the store-assigned document id
// kept for traceability.
type FuelStation struct {
	InternalID string  `bson:"_id,omitempty" json:"_id,omitempty"`
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	Address    string  `bson:"address" json:"address"`
	City       string  `bson:"city" json:"city"`
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`
	Pumps      []Pump  `bson:"pumps" json:"pumps"`
}
