package kernel

import (
	"errors"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when using a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is the country/region/city triple a service request is placed in.
// Components are stored as given after trimming; country codes are upper-cased.
type Location struct {
	country string
	region  string
	city    string
	guard   guard.ConstructorGuard
}

// NewLocation validates that every component is present.
func NewLocation(country, region, city string) (Location, error) {
	loc := Location{
		country: strings.ToUpper(strings.TrimSpace(country)),
		region:  strings.TrimSpace(region),
		city:    strings.TrimSpace(city),
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if loc.country == "" {
		errList = append(errList, errs.NewValueIsRequiredError("country"))
	}
	if loc.region == "" {
		errList = append(errList, errs.NewValueIsRequiredError("region"))
	}
	if loc.city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	if err := errors.Join(errList...); err != nil {
		return Location{}, err
	}

	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Country() string { return l.country }
func (l Location) Region() string  { return l.region }
func (l Location) City() string    { return l.city }

func (l Location) IsEqual(other Location) bool {
	return l.country == other.country && l.region == other.region && l.city == other.city
}

func (l Location) String() string {
	return l.country + "/" + l.region + "/" + l.city
}
