package models

import "time"

// Arrival is one upcoming tram in the latest poll.
type Arrival struct {
	Destination string `json:"destination"`
	Direction   string `json:"direction"`
	DueMinutes  int64  `json:"dueMinutes"`
	DueAt       string `json:"dueAt"`
}

// ArrivalsData is the payload for the current-arrivals endpoint.
type ArrivalsData struct {
	StopCode     string    `json:"stopCode"`
	LastUpdated  string    `json:"lastUpdated"`
	NextArrivals []Arrival `json:"nextArrivals"`
}

func NewArrival(destination, direction string, dueMinutes int64, dueAt time.Time) Arrival {
	return Arrival{
		Destination: destination,
		Direction:   direction,
		DueMinutes:  dueMinutes,
		DueAt:       dueAt.UTC().Format(time.RFC3339),
	}
}

func NewArrivalsData(stopCode string, lastUpdated time.Time, arrivals []Arrival) ArrivalsData {
	if arrivals == nil {
		arrivals = []Arrival{}
	}

	return ArrivalsData{
		StopCode:     stopCode,
		LastUpdated:  lastUpdated.UTC().Format(time.RFC3339),
		NextArrivals: arrivals,
	}
}
