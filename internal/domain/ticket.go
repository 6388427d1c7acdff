package domain

type PlaneTicket struct {
	ID            int64   `json:"id"`
	Price         float64 `json:"price" binding:"gte=0"`
	PurchaseDate  Date    `json:"purchaseDate" binding:"required"`
	SeatNumber    int     `json:"seatNumber" binding:"required,gt=0"`
	PassengerID   int64   `json:"passengerId" binding:"required,gt=0"`
	TravelClassID int64   `json:"travelClassId" binding:"required,gt=0"`
	FlightID      int64   `json:"flightId" binding:"required,gt=0"`
}
