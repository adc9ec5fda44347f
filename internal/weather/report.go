package weather

import (
	"fmt"
	"time"
)

// 1 km/h is about 0.54 knots.
const knotsPerKmh = 0.54

// Condition derives the qualitative condition from an observation. The
// checks are ordered; the first match wins, then the temperature prefix
// stacks on top.
func Condition(obs Observation) string {
	var condition string
	switch {
	case obs.SnowMm > 0:
		condition = "snowy"
	case obs.PrecipitationMm > 5:
		condition = "rainy"
	case obs.RelativeHumidityPct > 90:
		condition = "foggy"
	case obs.CloudCoverPct < 20:
		condition = "sunny"
	case obs.CloudCoverPct < 70:
		condition = "partly cloudy"
	default:
		condition = "cloudy"
	}

	if obs.TemperatureC < 0 {
		condition = "freezing " + condition
	} else if obs.TemperatureC > 30 {
		condition = "hot and " + condition
	}

	return condition
}

// FogNote is independent of Condition; a foggy condition and the fog note
// can both fire.
func FogNote(obs Observation) string {
	if obs.RelativeHumidityPct >= 90 {
		return "Possible fog/mist (FG/BR)"
	}
	return "No fog/mist reported"
}

// FormatReport renders the full weather report: a narrative sentence, the
// summary bullets, and the aviation block. Pure string formatting, no I/O.
// The aviation block has a fixed shape; fields the providers cannot supply
// are printed as not available rather than omitted.
func FormatReport(loc Location, date time.Time, obs Observation, historical bool) string {
	windKnots := obs.WindSpeedKmh * knotsPerKmh

	verb := "is expected to be"
	if historical {
		verb = "was"
	}

	return fmt.Sprintf(`On %s, the weather in %s %s %s. The average temperature %s %.2f°C, with %.1fmm of precipitation and average wind speeds of %.2fkm/h.

- Average Temperature: %.2f°C
- Average Wind Speed: %.2f km/h
- Total Precipitation: %.1f mm
- Average Relative Humidity: %.0f%%
- Average Cloud Cover: %.0f%%

Weather information for our pilots:
- Average Temperature: %.2f°C
- Wind: %.2f km/h (%.1f knots) from %.0f° (DD)
- Precipitation (RA): %.1f mm
- Snow (SN): %.1f mm
- Average Relative Humidity (RH): %.0f%%
- Average Barometric Pressure (QNH): %.0f hPa
- %s
- Freezing Level (FZ LVL): Information not available
- Ceiling Height (CIG): Information not available`,
		date.Format("2006-01-02"), loc.DisplayName, verb, Condition(obs),
		verb, obs.TemperatureC, obs.PrecipitationMm, obs.WindSpeedKmh,
		obs.TemperatureC,
		obs.WindSpeedKmh,
		obs.PrecipitationMm,
		obs.RelativeHumidityPct,
		obs.CloudCoverPct,
		obs.TemperatureC,
		obs.WindSpeedKmh, windKnots, obs.WindDirectionDeg,
		obs.PrecipitationMm,
		obs.SnowMm,
		obs.RelativeHumidityPct,
		obs.PressureHPa,
		FogNote(obs))
}
