// This file is derived from the curated package of Gopher2600
// (https://github.com/jetsetilly/gopher2600), which is free software under
// the GNU General Public License, version 3 or later. This file is
// distributed under the same license.

// Package curated is used to create error values with a stable pattern. The
// pattern is the identity of the error: callers test for it with Is() and Has()
// rather than by comparing message strings.
//
//	var BadAlignment = "memory: bad alignment: %#06x"
//
//	err := curated.Errorf(BadAlignment, addr)
//	if curated.Is(err, BadAlignment) {
//		...
//	}
//
// Curated errors can wrap other errors by passing them as values. Has() and
// the standard library errors.Is()/errors.As() functions both see through the
// wrapping.
package curated

import (
	"fmt"
	"strings"
)

type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. Formatting is deferred until Error() is
// called.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Normalisation removes duplicate
// adjacent parts of the message, which happens when errors of the same
// package are chained.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// Unwrap returns the first wrapped error value, if there is one.
func (er curated) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if error is a curated error with a specific pattern somewhere in
// the chain.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	for _, v := range err.(curated).values {
		if e, ok := v.(curated); ok {
			if Has(e, pattern) {
				return true
			}
		}
	}

	return false
}
