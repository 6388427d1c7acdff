package domain

type Flight struct {
	ID            int64  `json:"id"`
	DepartureDate Date   `json:"departureDate" binding:"required"`
	DepartureTime string `json:"departureTime" binding:"required,datetime=15:04"`
	AirlineID     int64  `json:"airlineId" binding:"required,gt=0"`
	DestinationID int64  `json:"destinationId" binding:"required,gt=0"`
	PilotID       int64  `json:"pilotId" binding:"required,gt=0"`
}
