package mock

import "github.com/sportsense/sportsense"

var _ sportsense.Converter = (*Converter)(nil)

// Converter is a mock implementation of sportsense.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
