package domain

type Airline struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required,max=100"`
}

type Destination struct {
	ID      int64  `json:"id"`
	City    string `json:"city" binding:"required,max=100"`
	Airport string `json:"airport" binding:"required,max=100"`
}

// TravelClass is reference data. It can be created and corrected but never deleted.
type TravelClass struct {
	ID   int64  `json:"id"`
	Type string `json:"type" binding:"required,max=30"`
}
