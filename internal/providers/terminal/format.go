package terminal

import (
	"math"
	"strconv"
)

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func minutes(seconds float64) int {
	return int(math.Round(seconds / 60))
}
