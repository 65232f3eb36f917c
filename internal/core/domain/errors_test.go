package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_AreDistinct tests that sentinel errors are not aliases
func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrNotImplemented,
		ErrUnsupportedFormat, ErrInvariant, ErrNotCanonical, ErrNotMarkup,
		ErrInvalidPoint,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

// TestErrors_Wrapping tests that wrapped errors still match
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("decode canonical: %w", ErrNotCanonical)
	assert.ErrorIs(t, wrapped, ErrNotCanonical)
	assert.NotErrorIs(t, wrapped, ErrNotMarkup)
}
