package schedule

// WeatherReport is a snapshot of analyzed forecast conditions produced by
// the weather collaborator. The engine only consumes it; a nil report is a
// valid input meaning weather data is unavailable, in which case
// weather-gated eligibility is skipped entirely rather than guessed.
type WeatherReport struct {
	CurrentTemp float64
	MaxTemp48h  float64
	MinTemp48h  float64
	HumidityAvg float64
	HeatIndex   float64
	Rain48h     bool

	HeatWave           bool
	ColdWave           bool
	HighHumidity       bool
	GoodFertilizerTime bool
}

// coldNightThreshold is the 48h minimum temperature below which cold
// nights raise the coccidiosis risk.
const coldNightThreshold = 5.0
