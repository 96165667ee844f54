// Package ll is the low-level layer of the binding. It turns the raw
// entry points of package native into typed operations:
//
//   - CheckStatus maps a native status code to nil or a native.Status error.
//   - PlatformID, DeviceID and the other handle types wrap raw handles so
//     one kind cannot be passed where another is expected.
//   - DeviceInfo, ContextInfo, CommandQueueInfo and MemInfo descriptors
//     read a property with the right size and decode it to a Go type.
//   - Context, CommandQueue and Mem each own one native reference.
//     TryClone retains, Release releases, and every owner is released
//     exactly once.
//
// Errors reported by the runtime are returned. A runtime that breaks the
// OpenCL contract (an undefined status code, a string without a NUL
// terminator, unknown flag bits, a failed retain or release) causes a
// panic with a *Violation, because no caller can safely continue.
package ll
