package mock

import "github.com/sportsense/sportsense"

var _ sportsense.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sportsense.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sportsense.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sportsense.ExtractResult, error) {
	return e.ExtractFn(html)
}
