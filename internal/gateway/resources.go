package gateway

import (
	"errors"
	"fmt"
	"strings"
)

type Resource string

const (
	Airline     Resource = "Airline"
	Destination Resource = "Destination"
	Flight      Resource = "Flight"
	Passenger   Resource = "Passenger"
	Pilot       Resource = "Pilot"
	PlaneTicket Resource = "PlaneTicket"
	TravelClass Resource = "TravelClass"
	User        Resource = "User"
)

var ErrUnknownResource = errors.New("unknown resource")

// paths maps every resource onto its route segment under /api/v1.
var paths = map[Resource]string{
	Airline:     "Airlines",
	Destination: "Destinations",
	Flight:      "Flights",
	Passenger:   "Passengers",
	Pilot:       "Pilots",
	PlaneTicket: "PlaneTickets",
	TravelClass: "TravelClasses",
	User:        "Users",
}

func (r Resource) Path() (string, error) {
	p, ok := paths[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownResource, string(r))
	}
	return p, nil
}

// ParseResource accepts a singular or plural name in any case.
func ParseResource(name string) (Resource, error) {
	for r, p := range paths {
		if strings.EqualFold(name, string(r)) || strings.EqualFold(name, p) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, name)
}
