package recorder

import "time"

type Windows map[string]time.Duration

func (w Windows) Max() time.Duration {
	var longest time.Duration
	for _, window := range w {
		if window > longest {
			longest = window
		}
	}
	return longest
}
