package errors

import "fmt"

// TooLargeError is returned by the raster target when the unscaled canvas
// exceeds MaxDimension in either direction. It is checked before any buffer
// is allocated.
type TooLargeError struct {
	BaseWidth    int
	BaseHeight   int
	MaxDimension int
}

// Code implements the coded-error contract so Is and GetCode recognise it.
func (e *TooLargeError) Code() Code { return ErrCodeTooLarge }

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeTooLarge, e.UserMessage())
}

// UserMessage states the current size, the limit, and the vector alternative.
func (e *TooLargeError) UserMessage() string {
	return fmt.Sprintf(
		"the mindmap is too large to export as PNG.\n\n"+
			"current size: %d x %dpx\n"+
			"PNG limit: %d x %dpx or smaller\n\n"+
			"export as SVG instead: SVG has no size limit and stays sharp at any zoom.",
		e.BaseWidth, e.BaseHeight, e.MaxDimension, e.MaxDimension)
}
