package levelwalk

import (
	"time"
)

type Time struct {
	Now   time.Time
	Dt    time.Duration
	Frame uint64
}

// DtSeconds is the last frame's duration in seconds.
func (t *Time) DtSeconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = time.Now
	}

	cmd.AddResources(&Time{Now: clock()})
	cmd.UseSystem(
		System(func(t *Time) {
			now := clock()
			t.Dt = now.Sub(t.Now)
			t.Now = now
			t.Frame++
		}).InStage(PreUpdate),
	)
}
