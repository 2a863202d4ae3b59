package ledger

import (
	"fmt"
	"time"
)

// YearMonth identifies a budget period. Month is 1..12.
type YearMonth struct {
	Month int
	Year  int
}

type Direction string

const (
	PreviousMonth Direction = "previous"
	NextMonth     Direction = "next"
)

func ParseDirection(value string) (Direction, error) {
	switch Direction(value) {
	case PreviousMonth, NextMonth:
		return Direction(value), nil
	}
	return "", fmt.Errorf("unknown direction %q", value)
}

func MonthOf(t time.Time) YearMonth {
	return YearMonth{Month: int(t.Month()), Year: t.Year()}
}

// Previous expects m.Month in 1..12.
func (m YearMonth) Previous() YearMonth {
	if m.Month == 1 {
		return YearMonth{Month: 12, Year: m.Year - 1}
	}
	return YearMonth{Month: m.Month - 1, Year: m.Year}
}

// Next expects m.Month in 1..12.
func (m YearMonth) Next() YearMonth {
	if m.Month == 12 {
		return YearMonth{Month: 1, Year: m.Year + 1}
	}
	return YearMonth{Month: m.Month + 1, Year: m.Year}
}

func (m YearMonth) Step(direction Direction) YearMonth {
	if direction == PreviousMonth {
		return m.Previous()
	}
	return m.Next()
}

// Label renders the period as "March 2025".
func (m YearMonth) Label() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month), m.Year)
}
