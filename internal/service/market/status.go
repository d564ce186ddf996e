package market

import (
	"time"

	"marketsim/internal/domain/models"
)

const (
	openHour  = 9
	closeHour = 15
)

// IsOpen reports whether the simulated exchange is trading at the given
// wall-clock time: weekdays, 09:00 through 15:59. No holiday calendar.
func IsOpen(now time.Time) bool {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	h := now.Hour()
	return h >= openHour && h <= closeHour
}

// Status returns the displayable market state.
func Status(now time.Time) models.MarketStatus {
	if IsOpen(now) {
		return models.MarketStatus{Open: true, Text: "Market Open"}
	}
	return models.MarketStatus{Open: false, Text: "Market Closed"}
}
