package models

import "time"

// Camera represents a single camera in the collection.
type Camera struct {
	ID               string    `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	YearManufactured int       `json:"year_manufactured"`
	Type             string    `json:"type"`        // e.g. SLR, TLR, rangefinder
	FilmFormat       string    `json:"film_format"` // e.g. 35mm, 120, 4x5
	Condition        string    `json:"condition"`   // mint, excellent, very good, good, fair, poor
	SpecialFeatures  []string  `json:"special_features"`
	Notes            string    `json:"notes,omitempty"`
	AcquisitionDate  string    `json:"acquisition_date,omitempty"` // YYYY-MM-DD
	AcquisitionPrice *float64  `json:"acquisition_price,omitempty"`
	EstimatedValue   *float64  `json:"estimated_value,omitempty"`
	Images           []string  `json:"images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CameraList is a paginated page of cameras.
type CameraList struct {
	Items []Camera `json:"items"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Size  int      `json:"size"`
	Pages int      `json:"pages"`
}

// BrandStat holds the camera count for one brand.
type BrandStat struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// TypeStat holds the camera count for one camera type.
type TypeStat struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// DecadeStat holds the camera count for one decade of manufacture.
type DecadeStat struct {
	Decade string `json:"decade"` // e.g. "1950s"
	Count  int    `json:"count"`
}

// ValueStat holds the total estimated value of the collection.
type ValueStat struct {
	TotalValue float64 `json:"total_value"`
}

// ValuationPoint is one recorded snapshot of the collection's value.
type ValuationPoint struct {
	RecordedAt  time.Time `json:"recorded_at"`
	TotalValue  float64   `json:"total_value"`
	CameraCount int       `json:"camera_count"`
}
