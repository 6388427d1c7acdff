package domain

type Pilot struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName" binding:"required,max=50"`
	LastName         string `json:"lastName" binding:"required,max=50"`
	UniquePersonalID string `json:"uniquePersonalId" binding:"required,max=13"`
	FlyingHours      int    `json:"flyingHours" binding:"gte=0"`
}

type Passenger struct {
	ID               int64  `json:"id"`
	FirstName        string `json:"firstName" binding:"required,max=50"`
	LastName         string `json:"lastName" binding:"required,max=50"`
	UniquePersonalID string `json:"uniquePersonalId" binding:"required,max=13"`
	PassportNumber   string `json:"passportNumber" binding:"required,max=20"`
	Address          string `json:"address" binding:"max=200"`
	Phone            string `json:"phone" binding:"max=30"`
}
