package activity

import "errors"

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrSlotTaken          = errors.New("user already has an activity in this time slot")
	ErrInvalidType        = errors.New("activity type must be personal or family")
	ErrInvalidStartMinute = errors.New("start time must be on the hour or half-hour")
	ErrInvalidDuration    = errors.New("duration must be positive")
)
