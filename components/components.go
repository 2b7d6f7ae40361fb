// Package components defines the data carried by animals and island cells.
package components

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrConstruction reports an animal built from invalid attributes.
var ErrConstruction = fmt.Errorf("construction: %w", ErrInvalidArgument)
