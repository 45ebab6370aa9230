package common

import "time"

// ScrapeEntry - Outcome of one scrape of one target.
type ScrapeEntry struct {
	Time     time.Time
	Target   string
	Duration time.Duration
	Success  bool
	Samples  int
}
