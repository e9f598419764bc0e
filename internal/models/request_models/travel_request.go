package request_models

// TravelRequest is built once per submission and never modified afterwards.
type TravelRequest struct {
	Destination string `json:"destination" form:"destination" binding:"required,max=200"`
	Duration    int    `json:"duration" form:"duration" binding:"required,min=1,max=30"`
	Interests   string `json:"interests" form:"interests" binding:"required,max=1000"`
}

type UpdateCostRequest struct {
	// Number or numeric string; anything else is coerced to 0.
	Cost any `json:"cost"`
}

type UpdateCostForm struct {
	DayIndex      int    `form:"day"`
	ActivityIndex int    `form:"activity"`
	Cost          string `form:"cost"`
}
