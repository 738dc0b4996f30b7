package model

import "fmt"

// Interval is a bar duration label. The analysis core treats it as opaque;
// the values map one-to-one onto Binance kline interval strings.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
)

var validIntervals = map[Interval]bool{
	Interval1m:  true,
	Interval5m:  true,
	Interval15m: true,
	Interval30m: true,
	Interval1h:  true,
	Interval4h:  true,
	Interval1d:  true,
}

// ParseInterval validates a user-supplied interval label.
func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if !validIntervals[iv] {
		return "", fmt.Errorf("%w: unsupported interval %q", ErrInvalidInput, s)
	}
	return iv, nil
}
