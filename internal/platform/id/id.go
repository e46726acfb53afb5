package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TimeOrdered issues UUIDv7 values, which sort by creation time.
type TimeOrdered struct{}

func (TimeOrdered) New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}
