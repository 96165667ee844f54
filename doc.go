// Package cl is a typed Go binding for OpenCL platform discovery and
// resource setup.
//
// # Overview
//
// cl finds the OpenCL platforms and devices installed on the machine,
// reads their properties and creates contexts, command queues and
// buffers. Kernel compilation and command submission are out of scope:
// the package is the foundation a compute pipeline builds on.
//
// # Quick Start
//
//	import "github.com/gogpu/cl"
//
//	for _, p := range cl.Platforms() {
//	    fmt.Println(p.Name(), p.Version())
//	    for _, d := range p.Devices() {
//	        fmt.Println("  ", d.Name(), d.Type(), d.ComputeUnits())
//	    }
//	}
//
//	ctx, err := platform.CreateContext(devices...)
//	if err != nil {
//	    return err
//	}
//	defer ctx.Release()
//
//	buf, err := ctx.CreateBuffer(ll.ReadWrite, 1<<20)
//
// # Errors
//
// Discovery accessors such as Platform.Name panic with a *Error when the
// runtime fails: a working OpenCL installation answers them. Everything
// that allocates (CreateContext, CreateBuffer, CreateQueue) returns an
// error, because running out of resources is expected. Use QueryDevice for
// recoverable access to any device property.
//
// # Lifetime
//
// Context, Queue and Buffer each own one native reference. Call Release
// when done; TryClone creates an independent owner of the same object.
// Owners that are dropped without Release are released by the garbage
// collector and reported through the logger at warning level.
//
// # Architecture
//
// The library is organized into:
//   - cl: this facade
//   - ll: typed status mapping, handles, property queries and owners
//   - native: raw entry points, constants and the runtime registry
//   - native/opencl: the system library loaded with purego
//   - native/nativetest: an in-memory runtime for tests
package cl
