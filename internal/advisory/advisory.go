// Package advisory derives human-readable farming guidance from soil and
// weather parameters. All functions are pure: same inputs, same text.
package advisory

import "fmt"

// Soil holds the nutrient and acidity parameters advisory text is based on.
type Soil struct {
	Nitrogen   float64
	Phosphorus float64
	Potassium  float64
	PH         float64
}

// Weather holds the seasonal weather parameters advisory text is based on.
type Weather struct {
	TemperatureC float64
	RainfallMM   float64
	HumidityPct  float64
}

// YieldCategory buckets a yield prediction (tonnes per hectare) into a
// coarse label for display.
func YieldCategory(prediction float64) string {
	switch {
	case prediction < 1.5:
		return "Low"
	case prediction < 3.0:
		return "Moderate"
	case prediction < 4.5:
		return "Good"
	default:
		return "Excellent"
	}
}

// Irrigation recommends an irrigation regime from seasonal rainfall,
// temperature, and humidity.
func Irrigation(w Weather) string {
	switch {
	case w.RainfallMM < 500:
		return "Rainfall is well below crop water requirements. Plan for full irrigation; drip systems will stretch limited water furthest."
	case w.RainfallMM < 1000:
		if w.TemperatureC > 30 {
			return "Moderate rainfall with high evaporation losses. Schedule supplemental irrigation every 7-10 days during dry spells."
		}
		return "Moderate rainfall should cover most of the season. Keep supplemental irrigation ready for flowering and grain-filling stages."
	default:
		if w.HumidityPct > 80 {
			return "Rainfall and humidity are both high. Irrigation is rarely needed; focus on field drainage to avoid waterlogging."
		}
		return "Rainfall is sufficient for rain-fed cultivation. Irrigate only during extended dry spells."
	}
}

// CropCycle suggests a cropping season from the temperature and rainfall
// profile.
func CropCycle(w Weather) string {
	switch {
	case w.RainfallMM >= 1000 && w.TemperatureC >= 24:
		return "Conditions favour a kharif (monsoon) cycle: sow with the onset of rains, harvest in early autumn."
	case w.TemperatureC < 18:
		return "Cool conditions favour a rabi (winter) cycle: sow in late autumn, harvest in spring."
	default:
		return "Conditions support both kharif and rabi cycles; choose based on water availability and market timing."
	}
}

// SoilHealth summarizes nutrient and acidity status.
func SoilHealth(s Soil) string {
	var issues []string
	if s.Nitrogen < 50 {
		issues = append(issues, "nitrogen is low")
	}
	if s.Phosphorus < 25 {
		issues = append(issues, "phosphorus is low")
	}
	if s.Potassium < 25 {
		issues = append(issues, "potassium is low")
	}
	if s.PH < 5.5 {
		issues = append(issues, "soil is strongly acidic")
	} else if s.PH > 7.5 {
		issues = append(issues, "soil is alkaline")
	}

	if len(issues) == 0 {
		return "Soil nutrient levels and pH are within healthy ranges for most crops."
	}

	msg := "Soil needs attention: " + issues[0]
	for _, issue := range issues[1:] {
		msg += ", " + issue
	}
	return msg + "."
}

// WeatherRisks names the dominant weather risks for the season.
func WeatherRisks(w Weather) string {
	var risks []string
	if w.TemperatureC > 35 {
		risks = append(risks, "heat stress during flowering")
	}
	if w.RainfallMM > 2000 {
		risks = append(risks, "waterlogging and nutrient leaching")
	} else if w.RainfallMM < 500 {
		risks = append(risks, "drought stress")
	}
	if w.HumidityPct > 80 {
		risks = append(risks, "fungal disease pressure")
	}

	if len(risks) == 0 {
		return "No major weather risks expected this season."
	}

	msg := "Watch for " + risks[0]
	for _, r := range risks[1:] {
		msg += ", " + r
	}
	return msg + "."
}

// FarmingTips produces an ordered list of actionable tips. The list is
// never empty: a general tip is always appended.
func FarmingTips(s Soil, w Weather) []string {
	var tips []string

	if s.Nitrogen < 50 {
		tips = append(tips, "Apply nitrogen in split doses: half at sowing, half at tillering.")
	}
	if s.Phosphorus < 25 {
		tips = append(tips, "Incorporate phosphate fertilizer at sowing; phosphorus moves slowly in soil.")
	}
	if s.Potassium < 25 {
		tips = append(tips, "Top up potassium before flowering to improve grain filling and drought tolerance.")
	}
	if s.PH < 5.5 {
		tips = append(tips, fmt.Sprintf("Soil pH %.1f is acidic; apply agricultural lime before the next sowing.", s.PH))
	} else if s.PH > 7.5 {
		tips = append(tips, fmt.Sprintf("Soil pH %.1f is alkaline; gypsum and organic matter will improve nutrient uptake.", s.PH))
	}

	if w.TemperatureC > 35 {
		tips = append(tips, "Mulch between rows to reduce soil temperature and evaporation.")
	}
	if w.RainfallMM > 2000 {
		tips = append(tips, "Prepare field drains early; prolonged waterlogging damages root systems.")
	} else if w.RainfallMM < 500 {
		tips = append(tips, "Select short-duration, drought-tolerant varieties for this season.")
	}
	if w.HumidityPct > 80 {
		tips = append(tips, "Scout weekly for fungal disease; high humidity accelerates spread.")
	}

	tips = append(tips, "Rotate crops and add organic matter each season to maintain long-term soil fertility.")
	return tips
}
