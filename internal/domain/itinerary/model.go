package itinerary

import "time"

type Location struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"not null"`
	Address   *string   `gorm:"type:text"`
	Latitude  *float64  `gorm:""`
	Longitude *float64  `gorm:""`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TripDestination orders a trip's locations by SortOrder.
type TripDestination struct {
	ID         uint `gorm:"primaryKey"`
	TripID     uint `gorm:"index;not null"`
	LocationID uint `gorm:"not null"`
	SortOrder  int  `gorm:"not null;default:0"`
}

type Event struct {
	ID         uint      `gorm:"primaryKey"`
	TripID     uint      `gorm:"index;not null"`
	LocationID *uint     `gorm:"index"`
	Date       time.Time `gorm:"type:date;not null"`
	StartTime  *string   `gorm:"type:time"`
	EndTime    *string   `gorm:"type:time"`
	Title      string    `gorm:"not null"`
	Type       string    `gorm:"not null"`
	Cost       *float64  `gorm:"type:numeric(12,2)"`
	Notes      *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type CreateLocationInput struct {
	Name      string
	Type      string
	Address   *string
	Latitude  *float64
	Longitude *float64
}

type AddDestinationInput struct {
	TripID     uint
	LocationID uint
	SortOrder  int
}

type CreateEventInput struct {
	TripID     uint
	LocationID *uint
	Date       time.Time
	StartTime  *string
	EndTime    *string
	Title      string
	Type       string
	Cost       *float64
	Notes      *string
}

// UpdateEventInput applies only the fields that are set.
type UpdateEventInput struct {
	LocationID *uint
	Date       *time.Time
	StartTime  *string
	EndTime    *string
	Title      *string
	Type       *string
	Cost       *float64
	Notes      *string
}
