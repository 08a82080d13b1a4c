package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall-clock reads so services can be tested at a fixed instant.
type Clock interface {
	Now() time.Time
}

var Module = fx.Provide(func() Clock {
	return &SystemClock{}
})

type SystemClock struct{}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}
