package glslext

import "github.com/gogpu/naga/glsl"

// Option configures an Extension during creation.
//
// Example:
//
//	ext := glslext.New(
//	    glslext.WithTargetVersion(glsl.Version450),
//	    glslext.WithResolver(glslext.NewResPaths("res", "mods/base")),
//	)
type Option func(*Extension)

// WithVersion sets the token emitted after "#version".
func WithVersion(version string) Option {
	return func(e *Extension) {
		e.version = version
	}
}

// WithTargetVersion sets the emitted version from a GLSL version,
// e.g. glsl.VersionES300 emits "#version 300 es".
func WithTargetVersion(v glsl.Version) Option {
	return func(e *Extension) {
		e.version = v.String()
	}
}

// WithResolver sets the resolver used by LoadHeader.
func WithResolver(r Resolver) Option {
	return func(e *Extension) {
		e.resolver = r
	}
}

// WithSink sets where diagnostics are reported. The default is a LogSink,
// which writes to slog.Default until SetLogger installs a logger with
// warnings enabled.
func WithSink(s Sink) Option {
	return func(e *Extension) {
		e.sink = s
	}
}

// WithReadFile replaces the function used to read header files. A nil
// function keeps the default.
func WithReadFile(read func(path string) (string, error)) Option {
	return func(e *Extension) {
		if read != nil {
			e.readFile = read
		}
	}
}
