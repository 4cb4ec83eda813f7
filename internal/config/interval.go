package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseInterval parses an install interval. Besides Go durations ("90m",
// "1h30m") it accepts day and week units ("2d", "1w") and bare integers,
// which are read as seconds.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty interval")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return seconds(n, s)
	}

	unit := s[len(s)-1]
	if unit == 'd' || unit == 'w' {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid interval '%s' — use e.g. 30m, 12h, 2d or 1w", s)
		}
		day := 24 * time.Hour
		if unit == 'w' {
			day *= 7
		}
		total := n * float64(day)
		if math.IsNaN(total) || total >= math.MaxInt64 {
			return 0, fmt.Errorf("interval '%s' is too large", s)
		}
		return checkPositive(time.Duration(total), s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval '%s' — use e.g. 30m, 12h, 2d or 1w", s)
	}
	return checkPositive(d, s)
}

func seconds(n int, s string) (time.Duration, error) {
	if int64(n) > math.MaxInt64/int64(time.Second) {
		return 0, fmt.Errorf("interval '%s' is too large", s)
	}
	return checkPositive(time.Duration(n)*time.Second, s)
}

func checkPositive(d time.Duration, s string) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("interval '%s' must be positive", s)
	}
	return d, nil
}

func parseIntervalValue(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		return ParseInterval(v)
	case int:
		return seconds(v, strconv.Itoa(v))
	default:
		return 0, fmt.Errorf("interval must be a duration string, got %T", raw)
	}
}
