// Package errutil separates programmer-error invariant checks from
// ordinary recoverable errors, the way the rest of this module expects.
package errutil

import "fmt"

// debug gates the invariant checks. They stay compiled in (so the
// checked expression is still evaluated for its side effects in neither
// case — there are none), but only panic in debug builds.
const debug = false

// First returns the first non-nil error, or nil if all are nil.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// FatalIf panics with err's message. It is used for invariant violations
// that must never happen regardless of the debug flag, such as
// corruption of an internal tagged pointer.
func FatalIf(err error) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf("FATAL: %v", err))
}

// Bug panics with the given message when debug is enabled.
func Bug(format string, msg ...any) {
	if debug {
		panic(fmt.Sprintf(format, msg...))
	}
}

// BugOn panics when cond is true and debug is enabled.
func BugOn(cond bool, format string, msg ...any) {
	if debug && cond {
		Bug(format, msg...)
	}
}

// BugOnNotEq panics when a != b and debug is enabled.
func BugOnNotEq(a, b any) {
	if a == b {
		return
	}
	Bug("BUG: a != b, %v != %v", a, b)
}
