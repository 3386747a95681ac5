package types

import (
	"fmt"
	"time"
)

// DateLayout формат хранения календарной даты
const DateLayout = "2006-01-02"

// NormalizeDate отбрасывает время и приводит дату к полуночи UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate форматирует календарную дату для хранения в БД
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate парсит дату YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// ParseDBDate парсит дату, прочитанную из БД.
// Драйверы возвращают её либо как "YYYY-MM-DD", либо как RFC3339 метку.
func ParseDBDate(s string) (time.Time, error) {
	if len(s) < len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date value %q", s)
	}
	return ParseDate(s[:len(DateLayout)])
}

// SameDate сравнивает календарные даты без учета времени
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
