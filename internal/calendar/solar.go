// Package calendar converts Gregorian wall-clock dates to solar-Hijri
// (Persian) calendar dates for receipt and invoice stamping.
package calendar

import (
	"fmt"
	"time"
)

var gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// solarMonthDays is the fixed table used by the conversion: six months of 31
// days, five of 30 and a final month of 29. There is deliberately no leap-day
// adjustment for the twelfth month; the leap day is absorbed by the ≥366
// branch of the 4-year sub-cycle below.
var solarMonthDays = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}

// ToSolarDate formats t's calendar date as a solar-Hijri date, YYYY/MM/DD
// with zero-padded month and day. The conversion is pure arithmetic: days are
// counted from 1600-01-01, shifted by the 79-day epoch offset, then split
// into 33-year grand cycles (12053 days) and 4-year sub-cycles (1461 days).
// Valid for dates from 1600-03-21 (solar year 979) onward; earlier dates
// would drive the day count negative and truncating division misrounds there.
func ToSolarDate(t time.Time) string {
	gy := t.Year() - 1600
	gm := int(t.Month())
	gd := t.Day() - 1

	gDayNo := 365*gy + (gy+3)/4 - (gy+99)/100 + (gy+399)/400
	for i := 0; i < gm-1; i++ {
		gDayNo += gregorianMonthDays[i]
	}
	if gm > 2 && ((gy%4 == 0 && gy%100 != 0) || gy%400 == 0) {
		gDayNo++ // leap February already passed
	}
	gDayNo += gd

	sDayNo := gDayNo - 79

	cycles := sDayNo / 12053
	sDayNo %= 12053

	sy := 979 + 33*cycles + 4*(sDayNo/1461)
	sDayNo %= 1461

	if sDayNo >= 366 {
		sy += (sDayNo - 1) / 365
		sDayNo = (sDayNo - 1) % 365
	}

	var m int
	for m = 0; m < 11 && sDayNo >= solarMonthDays[m]; m++ {
		sDayNo -= solarMonthDays[m]
	}

	return fmt.Sprintf("%d/%02d/%02d", sy, m+1, sDayNo+1)
}
