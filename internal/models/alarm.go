package models

import (
	"errors"
	"strings"
)

var (
	ErrLimitExceeded = errors.New("alarm limit exceeded")
	ErrInvalidAlarm  = errors.New("invalid alarm")
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// ParseDirection maps stored direction strings onto a Direction.
// Anything unrecognised reads as up.
func ParseDirection(s string) Direction {
	if Direction(strings.ToLower(strings.TrimSpace(s))) == DirectionDown {
		return DirectionDown
	}
	return DirectionUp
}

type Alarm struct {
	Symbol    string    `json:"symbol"`
	Target    float64   `json:"target"`
	Direction Direction `json:"direction"`
}

// Hit reports whether price reached the target within the relative tolerance.
func (a *Alarm) Hit(price, tolerance float64) bool {
	if a.Direction == DirectionDown {
		return price <= a.Target*(1+tolerance)
	}
	return price >= a.Target*(1-tolerance)
}

// InferDirection picks the alarm direction from where the target sits
// relative to the current price. Unknown prices default to up.
func InferDirection(target, current float64, known bool) Direction {
	if !known || target >= current {
		return DirectionUp
	}
	return DirectionDown
}
