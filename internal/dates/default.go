package dates

var defaultZone = mustZone(DefaultTimezone)

func mustZone(name string) *Zone {
	z, err := NewZone(name)
	if err != nil {
		panic(err)
	}
	return z
}

// Default returns the zone anchored to DefaultTimezone.
func Default() *Zone {
	return defaultZone
}
