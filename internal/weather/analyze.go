package weather

import (
	"errors"
	"math"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// periods48h is the number of 3-hour forecast periods covering roughly
// the next 48 hours.
const periods48h = 16

// Threshold constants for the condition flags.
const (
	heatWaveTemp       = 38.0 // a period counts toward a heat wave above this
	heatWaveMinPeriods = 2
	heatIndexLimit     = 45.0
	coldWaveTemp       = 8.0
	highHumidityAvg    = 80.0
	fertilizerTempMin  = 15.0
	fertilizerTempMax  = 32.0
	rainDryPeriods     = 8 // 24 hours of 3-hour periods
)

// ErrEmptyForecast indicates the API returned no forecast periods.
var ErrEmptyForecast = errors.New("forecast contains no periods")

// Analyze reduces the raw forecast to the condition snapshot used for
// task eligibility. Only the first 48 hours of periods are considered.
func Analyze(forecast *forecastResponse) (*schedule.WeatherReport, error) {
	if forecast == nil || len(forecast.List) == 0 {
		return nil, ErrEmptyForecast
	}

	periods := forecast.List
	if len(periods) > periods48h {
		periods = periods[:periods48h]
	}

	var (
		maxTemp     = periods[0].Main.TempMax
		minTemp     = periods[0].Main.TempMin
		sumMax      float64
		sumHumidity float64
		sumRain     float64
		hotPeriods  int
		rainFirst24 float64
	)
	for i, p := range periods {
		if p.Main.TempMax > maxTemp {
			maxTemp = p.Main.TempMax
		}
		if p.Main.TempMin < minTemp {
			minTemp = p.Main.TempMin
		}
		sumMax += p.Main.TempMax
		sumHumidity += p.Main.Humidity
		sumRain += p.Rain.ThreeHours
		if p.Main.TempMax > heatWaveTemp {
			hotPeriods++
		}
		if i < rainDryPeriods {
			rainFirst24 += p.Rain.ThreeHours
		}
	}

	avgMax := sumMax / float64(len(periods))
	avgHumidity := sumHumidity / float64(len(periods))
	hi := heatIndex(avgMax, avgHumidity)

	return &schedule.WeatherReport{
		CurrentTemp:        periods[0].Main.Temp,
		MaxTemp48h:         maxTemp,
		MinTemp48h:         minTemp,
		HumidityAvg:        avgHumidity,
		HeatIndex:          hi,
		Rain48h:            sumRain > 0,
		HeatWave:           hotPeriods >= heatWaveMinPeriods || hi > heatIndexLimit,
		ColdWave:           minTemp < coldWaveTemp,
		HighHumidity:       avgHumidity > highHumidityAvg,
		GoodFertilizerTime: avgMax >= fertilizerTempMin && avgMax <= fertilizerTempMax && rainFirst24 == 0,
	}, nil
}

// heatIndex approximates the felt temperature from dry-bulb temperature
// (Celsius) and relative humidity via the vapor-pressure adjustment.
func heatIndex(tempC, humidity float64) float64 {
	vapor := 6.11 * math.Pow(2.718, 5417.7530*(1/273.16-1/(273.16+tempC)))
	return tempC + 0.555*(vapor*humidity/100-10)
}
