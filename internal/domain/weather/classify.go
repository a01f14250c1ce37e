package weather

const (
	SummaryClear  = "Clear"
	SummaryCloudy = "Cloudy"
	SummaryRainy  = "Rainy"

	adviceClear = "Good weather - great day for walking and outdoor plans."
	adviceRain  = "Heavy rain expected - plan indoor activities or rideshares."
	adviceCloud = "Chance of showers - keep an umbrella handy and have a backup indoor option."
	adviceHeat  = "Very hot - schedule outdoor activities early and stay hydrated."
	adviceCold  = "Cold weather - bring layers and keep walks shorter."
)

const (
	heavyRainProbability = 70
	showerProbability    = 40
	heatThresholdMax     = 32.0
	coldThresholdMin     = 35.0
)

// Classify maps one forecast day to a summary and an advice line. Rules run
// in a fixed order: precipitation picks the summary and a first advice, then
// a hot maximum and a cold minimum each overwrite the advice while leaving
// the summary untouched.
func Classify(day DailyForecast) (summary, advice string) {
	summary = SummaryClear
	advice = adviceClear
	if day.PrecipProb >= heavyRainProbability {
		summary = SummaryRainy
		advice = adviceRain
	} else if day.PrecipProb >= showerProbability {
		summary = SummaryCloudy
		advice = adviceCloud
	}
	if day.TempMax >= heatThresholdMax {
		advice = adviceHeat
	}
	if day.TempMin <= coldThresholdMin {
		advice = adviceCold
	}
	return summary, advice
}

const (
	SeverityHeavyRain   = "heavy_rain"
	SeverityExtremeHeat = "extreme_heat"
)

// alertSeverity reports whether a day is severe enough to persist an alert.
func alertSeverity(day DailyForecast) (string, bool) {
	if day.PrecipProb >= heavyRainProbability {
		return SeverityHeavyRain, true
	}
	if day.TempMax >= heatThresholdMax {
		return SeverityExtremeHeat, true
	}
	return "", false
}
