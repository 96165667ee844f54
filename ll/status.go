package ll

import "github.com/gogpu/cl/native"

// CheckStatus maps a status returned by an OpenCL entry point to an
// error. Success yields nil and any other defined status is returned as
// the native.Status itself. A code the OpenCL headers do not define means
// the runtime is corrupt or misused, and CheckStatus panics with a
// *Violation of kind KindUnknownStatus.
func CheckStatus(status native.Status) error {
	if status == native.Success {
		return nil
	}
	if !status.Known() {
		violate(KindUnknownStatus, nil, "runtime returned undefined status %d", int32(status))
	}
	return status
}
