package scraping

import (
	"errors"
	"fmt"
)

// ErrAuthentication - Login could not be confirmed. Aborts the scrape of the target.
var ErrAuthentication = errors.New("authentication failed")

// PageError - A single page could not be fetched. The page is skipped, the scrape continues.
type PageError struct {
	Path       string
	StatusCode int // Zero if no response was received
	Err        error
}

func (err *PageError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("page %v: %v", err.Path, err.Err)
	}
	return fmt.Sprintf("page %v: unexpected status %v", err.Path, err.StatusCode)
}

func (err *PageError) Unwrap() error {
	return err.Err
}

// ScrapeError - The scrape of a target failed as a whole.
type ScrapeError struct {
	Target string
	Err    error
}

func (err *ScrapeError) Error() string {
	return fmt.Sprintf("scrape %v: %v", err.Target, err.Err)
}

func (err *ScrapeError) Unwrap() error {
	return err.Err
}
