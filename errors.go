package glslext

import "fmt"

// LookupError is returned by GetHeader for a header that is not cached.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no header %q loaded", e.Name)
}

// IOError is returned when a header's file cannot be located or read.
type IOError struct {
	Name string // header name
	Path string // logical path handed to the resolver
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("load header %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DirectiveError reports a malformed #include directive.
type DirectiveError struct {
	File string
	Line int
	Msg  string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}
