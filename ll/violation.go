package ll

import (
	"fmt"
	"strings"
)

// Kind categorizes a contract violation.
type Kind string

const (
	KindUnknownStatus   Kind = "unknown_status"
	KindMalformedString Kind = "malformed_string"
	KindUnknownBits     Kind = "unknown_bits"
	KindRetainFailed    Kind = "retain_failed"
	KindReleaseFailed   Kind = "release_failed"
	KindContextError    Kind = "context_error"
)

// Violation is the panic value used when the OpenCL runtime breaks the
// contract the binding relies on. It is never returned as an error.
type Violation struct {
	Cause  error
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	var b strings.Builder

	b.WriteString("opencl: contract violation [")
	b.WriteString(string(v.Kind))
	b.WriteByte(']')

	if v.Detail != "" {
		b.WriteString(": ")
		b.WriteString(v.Detail)
	}

	if v.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(v.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (v *Violation) Unwrap() error {
	return v.Cause
}

// Is reports whether target is a *Violation of the same Kind.
func (v *Violation) Is(target error) bool {
	if t, ok := target.(*Violation); ok {
		return v.Kind == t.Kind
	}
	return false
}

func violate(kind Kind, cause error, format string, args ...any) {
	panic(&Violation{
		Kind:   kind,
		Cause:  cause,
		Detail: fmt.Sprintf(format, args...),
	})
}
