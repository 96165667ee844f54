// Package opencl loads the system OpenCL ICD loader at run time and
// exposes it as a native.API. No cgo is involved: the library is opened
// with purego and each entry point is bound to a Go function value.
//
// Importing the package registers the loader under native.RuntimeOpenCL,
// so native.Default finds it:
//
//	import _ "github.com/gogpu/cl/native/opencl"
//
// The library is searched for under its usual names. Set
// GOCL_OPENCL_LIBRARY or use WithLibraryPath to point at a specific file.
package opencl
