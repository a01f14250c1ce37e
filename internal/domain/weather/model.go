package weather

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// DailyForecast carries the raw provider numbers for one calendar day.
type DailyForecast struct {
	Date       time.Time
	TempMax    float64
	TempMin    float64
	PrecipProb int
}

// Day is a classified forecast day as returned to the client.
type Day struct {
	DailyForecast
	Summary string
	Advice  string
}

// WeatherAlert is the persisted record of a severe forecast day, one row
// per (trip, date).
type WeatherAlert struct {
	ID              uint           `gorm:"primaryKey"`
	TripID          uint           `gorm:"index:idx_weather_alerts_pair,unique;not null"`
	Date            time.Time      `gorm:"type:date;index:idx_weather_alerts_pair,unique;not null"`
	Severity        string         `gorm:"type:varchar(32);not null"`
	Summary         string         `gorm:"not null"`
	ProviderPayload datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

// Provider is the external forecast collaborator. Geocode returns nil with
// a nil error when the name has no match; transport or parse failures are
// reported as ErrProviderUnavailable so callers can tell "no data" from
// "never reached the provider".
type Provider interface {
	Geocode(ctx context.Context, name string) (*Coordinates, error)
	DailyForecast(ctx context.Context, coords Coordinates, start, end time.Time) ([]DailyForecast, error)
}

type AlertRepository interface {
	UpsertAlert(ctx context.Context, alert *WeatherAlert) error
	ListAlertsByTrip(ctx context.Context, tripID uint) ([]WeatherAlert, error)
}
