package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// Percentage retorna part/total em porcentagem inteira, arredondando meio para cima.
// Total zero resulta em 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}

	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
