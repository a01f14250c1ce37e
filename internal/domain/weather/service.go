package weather

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trip-planner-go/pkg/logger"
)

type Service struct {
	provider Provider
	alerts   AlertRepository
	log      logger.Logger
}

func NewService(provider Provider, alerts AlertRepository, log logger.Logger) *Service {
	return &Service{provider: provider, alerts: alerts, log: log}
}

// ForecastForTrip geocodes the destination, fetches the daily forecast for
// the trip's date span and classifies each day. An unresolvable destination
// is ErrDestinationNotFound; an unavailable forecast provider degrades to an
// empty day list rather than an error. Severe days are recorded as alerts.
func (s *Service) ForecastForTrip(ctx context.Context, tripID uint, destination string, start, end time.Time) ([]Day, error) {
	coords, err := s.provider.Geocode(ctx, destination)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			s.log.BusinessError("weather: geocoding unavailable", err, "trip_id", tripID, "destination", destination)
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if coords == nil {
		return nil, ErrDestinationNotFound
	}

	forecast, err := s.provider.DailyForecast(ctx, *coords, start, end)
	if err != nil {
		if !errors.Is(err, ErrProviderUnavailable) {
			return nil, err
		}
		s.log.BusinessError("weather: forecast unavailable", err, "trip_id", tripID, "destination", destination)
		forecast = nil
	}

	days := make([]Day, 0, len(forecast))
	for _, daily := range forecast {
		summary, advice := Classify(daily)
		days = append(days, Day{DailyForecast: daily, Summary: summary, Advice: advice})

		if err := s.recordAlert(ctx, tripID, daily, summary); err != nil {
			return nil, err
		}
	}
	return days, nil
}

func (s *Service) ListAlerts(ctx context.Context, tripID uint) ([]WeatherAlert, error) {
	return s.alerts.ListAlertsByTrip(ctx, tripID)
}

func (s *Service) recordAlert(ctx context.Context, tripID uint, daily DailyForecast, summary string) error {
	severity, severe := alertSeverity(daily)
	if !severe {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"temp_max":    daily.TempMax,
		"temp_min":    daily.TempMin,
		"precip_prob": daily.PrecipProb,
	})
	if err != nil {
		return err
	}

	return s.alerts.UpsertAlert(ctx, &WeatherAlert{
		TripID:          tripID,
		Date:            daily.Date,
		Severity:        severity,
		Summary:         summary,
		ProviderPayload: payload,
	})
}
