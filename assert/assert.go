package assert

import "fmt"

// Assert panics when condition does not hold. Used for invariants that can
// only break through a programming error, such as a layout declaration
// drifting from its published account size.
func Assert(condition bool, format string, args ...interface{}) {
	if condition {
		return
	}
	if format == "" {
		panic("Unspecified AssertionError")
	}
	panic(fmt.Sprintf(format, args...))
}

func LayoutSize(name string, declared int, expected int) {
	Assert(declared == expected, "%s layout declares %d bytes, on-chain account is %d", name, declared, expected)
}
