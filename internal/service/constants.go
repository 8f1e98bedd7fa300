package service

const (
	// History listing
	DefaultHistoryLimit = 20

	// Unit conversions
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)
