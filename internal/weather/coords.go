package weather

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Coordinates is a validated latitude/longitude pair.
type Coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// ParseCoordinates validates the raw lat/lon query values. Both must be
// present, numeric, and within the valid geographic ranges; anything
// else yields an InputError.
func ParseCoordinates(latStr, lonStr string) (Coordinates, error) {
	if latStr == "" || lonStr == "" {
		return Coordinates{}, NewInputError("both lat and lon parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Coordinates{}, NewInputError("latitude and longitude must be numbers")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Coordinates{}, NewInputError("latitude and longitude must be numbers")
	}

	c := Coordinates{Lat: lat, Lon: lon}
	if err := validate.Struct(c); err != nil {
		return Coordinates{}, NewInputError("latitude must be between -90 and 90, longitude between -180 and 180")
	}
	return c, nil
}

// Query formats the pair as a provider location query. Both the current
// and forecast lookups round to two decimal places so a given pair
// always maps to the same upstream query.
func (c Coordinates) Query() string {
	return strconv.FormatFloat(c.Lat, 'f', 2, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 2, 64)
}
