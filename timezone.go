package tame

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// DefaultTimezone timezone of loaded apps when none is given
const DefaultTimezone = "Asia/Shanghai"

func (t *Tame) initTimezone(useTZ bool, timezone string) error {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.useTZ = useTZ
	t.location = location
	return nil
}

// Location returns the timezone of loaded apps
func (t *Tame) Location() *time.Location {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.location
}

// UseTZ reports whether timestamps are kept in UTC
func (t *Tame) UseTZ() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.useTZ
}

// Now returns the current time, in UTC when UseTZ is set and in the loaded timezone otherwise
func (t *Tame) Now() time.Time {
	if t.NowFunc != nil {
		return t.NowFunc()
	}
	if t.UseTZ() {
		return time.Now().UTC()
	}
	return time.Now().In(t.Location())
}

// BeginningOfDay returns the start of the current day in the loaded timezone
func (t *Tame) BeginningOfDay() time.Time {
	config := &now.Config{WeekStartDay: now.WeekStartDay, TimeLocation: t.Location(), TimeFormats: now.TimeFormats}
	return config.With(t.Now().In(t.Location())).BeginningOfDay()
}
