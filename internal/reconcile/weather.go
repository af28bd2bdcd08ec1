package reconcile

import (
	"github.com/aarondl/opt/omitnull"

	"github.com/preston-bernstein/f1-dashboard-service/internal/domain/races"
	"github.com/preston-bernstein/f1-dashboard-service/internal/fallback"
)

type weatherPolicy = fallback.Policy[races.WeatherPayload, float64]

func weatherKey(name string, get func(races.WeatherPayload) omitnull.Val[float64]) fallback.Step[races.WeatherPayload, float64] {
	return fallback.Field(name, get)
}

var (
	rainKeys = fallback.NewPolicy("rain",
		weatherKey("rain", func(w races.WeatherPayload) omitnull.Val[float64] { return w.Rain }),
		weatherKey("rain_probability", func(w races.WeatherPayload) omitnull.Val[float64] { return w.RainProbability }),
		weatherKey("rain_prob", func(w races.WeatherPayload) omitnull.Val[float64] { return w.RainProb }),
	)
	trackTempKeys = fallback.NewPolicy("trackTemp",
		weatherKey("track_temp_c", func(w races.WeatherPayload) omitnull.Val[float64] { return w.TrackTempC }),
		weatherKey("track_temp", func(w races.WeatherPayload) omitnull.Val[float64] { return w.TrackTemp }),
	)
	airTempKeys = fallback.NewPolicy("airTemp",
		weatherKey("air_temp_c", func(w races.WeatherPayload) omitnull.Val[float64] { return w.AirTempC }),
		weatherKey("air_temp", func(w races.WeatherPayload) omitnull.Val[float64] { return w.AirTemp }),
	)
	windKeys = fallback.NewPolicy("windSpeed",
		weatherKey("wind_speed", func(w races.WeatherPayload) omitnull.Val[float64] { return w.WindSpeed }),
		weatherKey("wind_speed_kmh", func(w races.WeatherPayload) omitnull.Val[float64] { return w.WindSpeedKmh }),
	)
	humidityKeys = fallback.NewPolicy("humidity",
		weatherKey("humidity", func(w races.WeatherPayload) omitnull.Val[float64] { return w.Humidity }),
		weatherKey("humidity_pct", func(w races.WeatherPayload) omitnull.Val[float64] { return w.HumidityPct }),
	)
)

// WeatherPolicies lists the key order per summary field.
func WeatherPolicies() []weatherPolicy {
	return []weatherPolicy{rainKeys, trackTempKeys, airTempKeys, windKeys, humidityKeys}
}

// NormalizeWeather takes the first non-null key per field.
func NormalizeWeather(w races.WeatherPayload) races.WeatherSummary {
	return races.WeatherSummary{
		Rain:      resolvePtr(rainKeys, w),
		TrackTemp: resolvePtr(trackTempKeys, w),
		AirTemp:   resolvePtr(airTempKeys, w),
		WindSpeed: resolvePtr(windKeys, w),
		Humidity:  resolvePtr(humidityKeys, w),
	}
}

func resolvePtr(p weatherPolicy, w races.WeatherPayload) *float64 {
	v, ok := p.Resolve(w)
	if !ok {
		return nil
	}
	return &v
}
