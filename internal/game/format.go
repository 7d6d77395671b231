package game

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

const currencySymbol = "₹"

// formatMoney форматирует модуль суммы с разделителями тысяч: ₹12,000.
func formatMoney(amount int64) string {
	if amount < 0 {
		amount = -amount
	}
	return currencySymbol + humanize.Comma(amount)
}

// formatSignedMoney: +₹500 / -₹800 / +₹0.
func formatSignedMoney(amount int64) string {
	if amount < 0 {
		return "-" + formatMoney(amount)
	}
	return "+" + formatMoney(amount)
}

func formatSignedPoints(points int) string {
	if points > 0 {
		return "+" + strconv.Itoa(points)
	}
	return strconv.Itoa(points)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
