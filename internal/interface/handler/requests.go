package handler

import (
	"encoding/json"
	"fmt"
	"io"

	"fuelstation-service/internal/domain/entity"
	"fuelstation-service/internal/domain/repository"
	"fuelstation-service/pkg/validation"
)

// Wire payloads use pointer fields so a missing field is
// distinguishable from a zero value, and validation.Number so numeric
// strings coerce on create.
type pumpPayload struct {
	ID        *validation.Number `json:"id"`
	FuelType  *string            `json:"fuel_type"`
	Price     *validation.Number `json:"price"`
	Available *bool              `json:"available"`
}

type createStationPayload struct {
	ID        *string            `json:"id"`
	Name      *string            `json:"name"`
	Address   *string            `json:"address"`
	City      *string            `json:"city"`
	Latitude  *validation.Number `json:"latitude"`
	Longitude *validation.Number `json:"longitude"`
	Pumps     *[]pumpPayload     `json:"pumps"`
}

type updateNamePayload struct {
	Name *string `json:"name"`
}

// The pump-price patch takes plain numbers, no string coercion.
type pumpPricePayload struct {
	ID    *float64 `json:"id"`
	Price *float64 `json:"price"`
}

func decodeBody(body io.Reader, dst interface{}) *validation.Problem {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var issues validation.Issues
		issues.Add(err.Error())
		return validation.NewProblem(issues)
	}
	return nil
}

func requireString(issues *validation.Issues, field string, value *string) string {
	if value == nil {
		issues.Add("Required", field)
		return ""
	}
	if *value == "" {
		issues.Add("String must contain at least 1 character(s)", field)
		return ""
	}
	return *value
}

// parseCreateStation validates a station creation body and maps it to
// the domain entity.
func parseCreateStation(body io.Reader) (*entity.FuelStation, *validation.Problem) {
	var payload createStationPayload
	if problem := decodeBody(body, &payload); problem != nil {
		return nil, problem
	}

	var issues validation.Issues
	station := &entity.FuelStation{
		ID:      requireString(&issues, "id", payload.ID),
		Name:    requireString(&issues, "name", payload.Name),
		Address: requireString(&issues, "address", payload.Address),
		City:    requireString(&issues, "city", payload.City),
	}

	switch {
	case payload.Latitude == nil:
		issues.Add("Required", "latitude")
	case payload.Latitude.Float64() < -90 || payload.Latitude.Float64() > 90:
		issues.Add("Latitude must be between -90 and 90", "latitude")
	default:
		station.Latitude = payload.Latitude.Float64()
	}

	switch {
	case payload.Longitude == nil:
		issues.Add("Required", "longitude")
	case payload.Longitude.Float64() < -180 || payload.Longitude.Float64() > 180:
		issues.Add("Longitude must be between -180 and 180", "longitude")
	default:
		station.Longitude = payload.Longitude.Float64()
	}

	if payload.Pumps == nil {
		issues.Add("Required", "pumps")
	} else {
		station.Pumps = make([]entity.Pump, 0, len(*payload.Pumps))
		for i, p := range *payload.Pumps {
			var pump entity.Pump

			if p.ID == nil {
				issues.Add("Required", "pumps", i, "id")
			} else {
				pump.ID = int(p.ID.Float64())
			}

			if p.FuelType == nil {
				issues.Add("Required", "pumps", i, "fuel_type")
			} else if ft := entity.FuelType(*p.FuelType); !ft.Valid() {
				issues.Add(fmt.Sprintf("Invalid fuel type %q", *p.FuelType), "pumps", i, "fuel_type")
			} else {
				pump.FuelType = ft
			}

			switch {
			case p.Price == nil:
				issues.Add("Required", "pumps", i, "price")
			case p.Price.Float64() < 0:
				issues.Add("Price must be greater than or equal to 0", "pumps", i, "price")
			default:
				pump.Price = p.Price.Float64()
			}

			if p.Available == nil {
				issues.Add("Required", "pumps", i, "available")
			} else {
				pump.Available = *p.Available
			}

			station.Pumps = append(station.Pumps, pump)
		}
	}

	if len(issues) > 0 {
		return nil, validation.NewProblem(issues)
	}
	return station, nil
}

// parseUpdateName validates a name patch body.
func parseUpdateName(body io.Reader) (string, *validation.Problem) {
	var payload updateNamePayload
	if problem := decodeBody(body, &payload); problem != nil {
		return "", problem
	}

	var issues validation.Issues
	name := requireString(&issues, "name", payload.Name)
	if len(issues) > 0 {
		return "", validation.NewProblem(issues)
	}
	return name, nil
}

// parseUpdatePumpPrices validates a pump-price patch body.
func parseUpdatePumpPrices(body io.Reader) ([]repository.PumpPriceUpdate, *validation.Problem) {
	var payload []pumpPricePayload
	if problem := decodeBody(body, &payload); problem != nil {
		return nil, problem
	}

	var issues validation.Issues
	// JSON null decodes into a nil slice without error.
	if payload == nil {
		issues.Add("Expected array, received null")
		return nil, validation.NewProblem(issues)
	}

	updates := make([]repository.PumpPriceUpdate, 0, len(payload))
	for i, p := range payload {
		var update repository.PumpPriceUpdate

		if p.ID == nil {
			issues.Add("Required", i, "id")
		} else {
			update.PumpID = int(*p.ID)
		}

		switch {
		case p.Price == nil:
			issues.Add("Required", i, "price")
		case *p.Price < 0:
			issues.Add("Price must be greater than or equal to 0", i, "price")
		default:
			update.Price = *p.Price
		}

		updates = append(updates, update)
	}

	if len(issues) > 0 {
		return nil, validation.NewProblem(issues)
	}
	return updates, nil
}
