// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package bangla renders numbers and calendar dates in Bengali script.
// Only digits, month names and weekday names are localized; everything
// else passes through untouched.
package bangla

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidIndex is returned when a month or weekday index is out of range.
var ErrInvalidIndex = errors.New("bangla: index out of range")

var digitReplacer = strings.NewReplacer(
	"0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪",
	"5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯",
)

var months = [12]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// weekdays is indexed with Monday = 0.
var weekdays = [7]string{
	"সোমবার", "মঙ্গলবার", "বুধবার", "বৃহস্পতিবার", "শুক্রবার", "শনিবার", "রবিবার",
}

// Digits maps every ASCII digit in s to its Bengali numeral.
// Bengali digits are not ASCII, so applying Digits twice is a no-op.
func Digits(s string) string {
	return digitReplacer.Replace(s)
}

// Number formats an integer with Bengali digits.
func Number(n int) string {
	return Digits(strconv.Itoa(n))
}

// MonthName returns the Bengali name of month n (1 = January).
func MonthName(n int) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("month %d: %w", n, ErrInvalidIndex)
	}
	return months[n-1], nil
}

// WeekdayName returns the Bengali name of weekday n (0 = Monday).
func WeekdayName(n int) (string, error) {
	if n < 0 || n > 6 {
		return "", fmt.Errorf("weekday %d: %w", n, ErrInvalidIndex)
	}
	return weekdays[n], nil
}

// Weekday converts a time.Weekday (Sunday = 0) to the Monday = 0 index
// used by WeekdayName.
func Weekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ShortDate formats t as "{day} {month}", e.g. "৫ অক্টোবর".
func ShortDate(t time.Time) string {
	return Number(t.Day()) + " " + months[t.Month()-1]
}

// LongDate formats t as "{weekday} | {day} {month}, {year}",
// e.g. "রবিবার | ৫ অক্টোবর, ২০২৫".
func LongDate(t time.Time) string {
	return weekdays[Weekday(t.Weekday())] + " | " + ShortDate(t) + ", " + Number(t.Year())
}

// DateTime formats t as a short date followed by the year and a 24h clock,
// e.g. "৫ অক্টোবর ২০২৫, ১৮:৩০". Used for event listings.
func DateTime(t time.Time) string {
	return ShortDate(t) + " " + Number(t.Year()) + ", " + Digits(t.Format("15:04"))
}
