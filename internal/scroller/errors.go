package scroller

import "errors"

// Construction errors. New wraps these with the offending value.
var (
	ErrNoRenderer            = errors.New("renderer is required")
	ErrNoContainer           = errors.New("container is required")
	ErrNoMeasurer            = errors.New("measurer is required")
	ErrInvalidViewport       = errors.New("viewport width and height must be greater than 0")
	ErrNoBounds              = errors.New("either bounds or a CanRenderAt renderer is required")
	ErrConflictingBounds     = errors.New("bounds and a CanRenderAt renderer are mutually exclusive")
	ErrInvalidBounds         = errors.New("bounds min must not exceed max")
	ErrInvalidInitialIndex   = errors.New("initial index cannot be rendered")
	ErrConflictingCellHeight = errors.New("cell height and estimated cell height are mutually exclusive")
	ErrInvalidSize           = errors.New("sizes must not be negative")
)

// Runtime errors.
var (
	ErrNotStarted      = errors.New("engine has not been started")
	ErrAlreadyStarted  = errors.New("engine was already started")
	ErrBusy            = errors.New("engine is busy with another step")
	ErrDisposed        = errors.New("engine is disposed")
	ErrProbeDetached   = errors.New("measurement surface is not attached")
	ErrMeasureInFlight = errors.New("a measurement is already in flight")
	ErrMeasureMismatch = errors.New("measurement returned an unexpected number of sizes")
)
