package repository

import "github.com/Domenick1991/flightdesk/internal/domain"

func Airlines() Descriptor[domain.Airline] {
	return Descriptor[domain.Airline]{
		Name:       "Airline",
		Table:      "airlines",
		Columns:    []string{"name"},
		OrderBy:    "name, id",
		Filters:    []Filter{ByName("name")},
		Dependents: []Dependent{{Table: "flights", Column: "airline_id"}},
		ID:         func(a *domain.Airline) *int64 { return &a.ID },
		Fields:     func(a *domain.Airline) []any { return []any{&a.Name} },
	}
}

func Destinations() Descriptor[domain.Destination] {
	return Descriptor[domain.Destination]{
		Name:       "Destination",
		Table:      "destinations",
		Columns:    []string{"city", "airport"},
		OrderBy:    "city, airport, id",
		Filters:    []Filter{ByName("city", "airport")},
		Dependents: []Dependent{{Table: "flights", Column: "destination_id"}},
		ID:         func(d *domain.Destination) *int64 { return &d.ID },
		Fields:     func(d *domain.Destination) []any { return []any{&d.City, &d.Airport} },
	}
}

func Pilots() Descriptor[domain.Pilot] {
	return Descriptor[domain.Pilot]{
		Name:       "Pilot",
		Table:      "pilots",
		Columns:    []string{"first_name", "last_name", "unique_personal_id", "flying_hours"},
		OrderBy:    "last_name, first_name, id",
		Filters:    []Filter{ByName("first_name", "last_name")},
		Dependents: []Dependent{{Table: "flights", Column: "pilot_id"}},
		ID:         func(p *domain.Pilot) *int64 { return &p.ID },
		Fields: func(p *domain.Pilot) []any {
			return []any{&p.FirstName, &p.LastName, &p.UniquePersonalID, &p.FlyingHours}
		},
	}
}

func Passengers() Descriptor[domain.Passenger] {
	return Descriptor[domain.Passenger]{
		Name:  "Passenger",
		Table: "passengers",
		Columns: []string{
			"first_name", "last_name", "unique_personal_id", "passport_number", "address", "phone",
		},
		OrderBy:    "last_name, first_name, id",
		Filters:    []Filter{ByName("first_name", "last_name")},
		Dependents: []Dependent{{Table: "plane_tickets", Column: "passenger_id"}},
		ID:         func(p *domain.Passenger) *int64 { return &p.ID },
		Fields: func(p *domain.Passenger) []any {
			return []any{&p.FirstName, &p.LastName, &p.UniquePersonalID, &p.PassportNumber, &p.Address, &p.Phone}
		},
	}
}

func Flights() Descriptor[domain.Flight] {
	return Descriptor[domain.Flight]{
		Name:       "Flight",
		Table:      "flights",
		Columns:    []string{"departure_date", "departure_time", "airline_id", "destination_id", "pilot_id"},
		OrderBy:    "departure_date, departure_time, id",
		Filters:    []Filter{ByDateRange("departure_date")},
		Dependents: []Dependent{{Table: "plane_tickets", Column: "flight_id"}},
		ID:         func(f *domain.Flight) *int64 { return &f.ID },
		Fields: func(f *domain.Flight) []any {
			return []any{&f.DepartureDate, &f.DepartureTime, &f.AirlineID, &f.DestinationID, &f.PilotID}
		},
	}
}

func PlaneTickets() Descriptor[domain.PlaneTicket] {
	return Descriptor[domain.PlaneTicket]{
		Name:  "PlaneTicket",
		Table: "plane_tickets",
		Columns: []string{
			"price", "purchase_date", "seat_number", "passenger_id", "travel_class_id", "flight_id",
		},
		OrderBy: "purchase_date DESC, id",
		Filters: []Filter{ByPriceRange("price"), ByDateRange("purchase_date")},
		ID:      func(t *domain.PlaneTicket) *int64 { return &t.ID },
		Fields: func(t *domain.PlaneTicket) []any {
			return []any{&t.Price, &t.PurchaseDate, &t.SeatNumber, &t.PassengerID, &t.TravelClassID, &t.FlightID}
		},
	}
}

// TravelClasses has no dependents listed: the resource is never deletable, and
// the foreign key from plane_tickets still protects it at the store.
func TravelClasses() Descriptor[domain.TravelClass] {
	return Descriptor[domain.TravelClass]{
		Name:    "TravelClass",
		Table:   "travel_classes",
		Columns: []string{"type"},
		OrderBy: "id",
		Filters: []Filter{ByName("type")},
		ID:      func(t *domain.TravelClass) *int64 { return &t.ID },
		Fields:  func(t *domain.TravelClass) []any { return []any{&t.Type} },
	}
}

func PrivilegedUsers() Descriptor[domain.PrivilegedUser] {
	return Descriptor[domain.PrivilegedUser]{
		Name:    "User",
		Table:   "privileged_users",
		Columns: []string{"user_name", "password", "roles"},
		OrderBy: "user_name, id",
		Filters: []Filter{ByName("user_name")},
		ID:      func(u *domain.PrivilegedUser) *int64 { return &u.ID },
		Fields: func(u *domain.PrivilegedUser) []any {
			return []any{&u.UserName, &u.Password, &u.Roles}
		},
	}
}

// Repositories bundles one repository per resource.
type Repositories struct {
	Airlines      *PGRepository[domain.Airline]
	Destinations  *PGRepository[domain.Destination]
	Pilots        *PGRepository[domain.Pilot]
	Passengers    *PGRepository[domain.Passenger]
	Flights       *PGRepository[domain.Flight]
	PlaneTickets  *PGRepository[domain.PlaneTicket]
	TravelClasses *PGRepository[domain.TravelClass]
	Users         *PGUserRepository
}

func NewRepositories(db DB) *Repositories {
	return &Repositories{
		Airlines:      NewRepository(db, Airlines()),
		Destinations:  NewRepository(db, Destinations()),
		Pilots:        NewRepository(db, Pilots()),
		Passengers:    NewRepository(db, Passengers()),
		Flights:       NewRepository(db, Flights()),
		PlaneTickets:  NewRepository(db, PlaneTickets()),
		TravelClasses: NewRepository(db, TravelClasses()),
		Users:         NewUserRepository(db),
	}
}
