package opencl

import "errors"

var (
	// ErrLibraryNotFound is returned when no OpenCL library could be opened.
	ErrLibraryNotFound = errors.New("opencl: OpenCL library not found")

	// ErrSymbolNotFound is returned when the library lacks an entry point
	// the binding needs.
	ErrSymbolNotFound = errors.New("opencl: entry point not found")

	// ErrUnsupported is returned on platforms the loader does not support.
	ErrUnsupported = errors.New("opencl: dynamic loading not supported on this platform")
)
