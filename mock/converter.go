package mock

import "github.com/fwojciec/bearreader"

var _ bearreader.Converter = (*Converter)(nil)

// Converter is a mock implementation of bearreader.Converter.
type Converter struct {
	ConvertFn func(html string) (bearreader.StyledText, error)
}

func (c *Converter) Convert(html string) (bearreader.StyledText, error) {
	return c.ConvertFn(html)
}
