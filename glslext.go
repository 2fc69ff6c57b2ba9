/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package glslext

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/gogpu/naga/glsl"

	"github.com/fwessels/glslext/internal/preprocessor"
	"github.com/fwessels/glslext/internal/textio"
)

// HeaderDir is the logical directory headers are loaded from.
const HeaderDir = "shaders/lib/"

// Extension holds the state shared by all units it processes: the target
// version, the header cache and the define table. It does no locking; use
// one Extension per goroutine (see Clone) or guard it externally.
type Extension struct {
	version  string
	headers  map[string]string
	defines  map[string]string
	resolver Resolver
	sink     Sink
	readFile func(path string) (string, error)
}

// New returns an Extension targeting GLSL 330 core unless configured
// otherwise. Diagnostics go to a LogSink unless WithSink is given.
func New(opts ...Option) *Extension {
	e := &Extension{
		version:  glsl.Version330.String(),
		headers:  map[string]string{},
		defines:  map[string]string{},
		sink:     LogSink{},
		readFile: textio.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Clone returns an Extension with copies of e's headers and defines. The
// resolver and sink are shared, so when clones run on separate goroutines
// both must be safe for concurrent use; a DiagnosticList is not.
func (e *Extension) Clone() *Extension {
	c := *e
	c.headers = maps.Clone(e.headers)
	c.defines = maps.Clone(e.defines)
	return &c
}

func (e *Extension) Version() string { return e.version }

// SetVersion sets the token emitted after "#version". It is not validated.
func (e *Extension) SetVersion(version string) { e.version = version }

// SetTargetVersion sets the emitted version from a GLSL version.
func (e *Extension) SetTargetVersion(v glsl.Version) { e.version = v.String() }

func (e *Extension) SetResolver(r Resolver) { e.resolver = r }

func (e *Extension) SetSink(s Sink) { e.sink = s }

// ---------------- Headers ----------------

func (e *Extension) HasHeader(name string) bool {
	_, ok := e.headers[name]
	return ok
}

// GetHeader returns the cached text of a header, or a *LookupError.
func (e *Extension) GetHeader(name string) (string, error) {
	text, ok := e.headers[name]
	if !ok {
		return "", &LookupError{Name: name}
	}
	return text, nil
}

// AddHeader registers header text under name, replacing any previous entry.
func (e *Extension) AddHeader(name, text string) {
	e.headers[name] = text
}

// LoadHeader reads shaders/lib/<name>.glsl through the resolver and caches
// it. Failures are returned as *IOError.
func (e *Extension) LoadHeader(name string) error {
	logical := HeaderDir + name + ".glsl"
	if e.resolver == nil {
		return &IOError{Name: name, Path: logical, Err: errors.New("no resolver configured")}
	}
	path, err := e.resolver.Find(logical)
	if err != nil {
		return &IOError{Name: name, Path: logical, Err: err}
	}
	text, err := e.readFile(path)
	if err != nil {
		return &IOError{Name: name, Path: logical, Err: err}
	}
	e.AddHeader(name, text)
	Logger().Debug("glslext: header loaded", "name", name, "path", path, "bytes", len(text))
	return nil
}

// Headers returns the names of all cached headers, sorted.
func (e *Extension) Headers() []string {
	return slices.Sorted(maps.Keys(e.headers))
}

// header returns a header's text, loading it on first use.
func (e *Extension) header(name string) (string, error) {
	if !e.HasHeader(name) {
		if err := e.LoadHeader(name); err != nil {
			return "", err
		}
	}
	return e.GetHeader(name)
}

// ---------------- Defines ----------------

// Macro is a define table entry, emitted as "#define Name Value".
type Macro struct {
	Name  string
	Value string
}

// Define sets a macro. Name and value are emitted verbatim.
func (e *Extension) Define(name, value string) {
	e.defines[name] = value
}

// Undefine removes a macro; it is a no-op if name is not defined.
func (e *Extension) Undefine(name string) {
	delete(e.defines, name)
}

func (e *Extension) HasDefine(name string) bool {
	_, ok := e.defines[name]
	return ok
}

// GetDefine returns the value of a macro, or "" if it is not defined.
func (e *Extension) GetDefine(name string) string {
	return e.defines[name]
}

// Defines returns all macros sorted by name, the order they are emitted in.
func (e *Extension) Defines() []Macro {
	out := make([]Macro, 0, len(e.defines))
	for _, name := range slices.Sorted(maps.Keys(e.defines)) {
		out = append(out, Macro{Name: name, Value: e.defines[name]})
	}
	return out
}

// ParseDefine splits "NAME=VALUE"; a bare "NAME" yields value "1".
func ParseDefine(s string) (name, value string) {
	return preprocessor.ParseDefine(s)
}

// ---------------- Process ----------------

// Process expands one shader unit. file is only used in diagnostics.
//
// The output starts with the version line and the define table, followed by
// the source with every "#include <name>" replaced by the header's text and
// every "#version" line removed. "#line" markers keep line numbers aligned
// with source. Headers are inserted verbatim; directives inside them are not
// expanded.
//
// On error the output is empty. Malformed includes yield *DirectiveError;
// header load failures yield *IOError.
func (e *Extension) Process(file, source string) (string, error) {
	defines := e.Defines()
	pp := &preprocessor.Preprocessor{
		Version: e.version,
		Defines: make([]preprocessor.Define, len(defines)),
		Header:  e.header,
		Warn: func(filename string, lineNo int, msg string) {
			if e.sink != nil {
				e.sink.Warn(Diagnostic{File: filename, Line: lineNo, Message: msg})
			}
		},
	}
	for i, d := range defines {
		pp.Defines[i] = preprocessor.Define{Name: d.Name, Value: d.Value}
	}

	var out strings.Builder
	if err := pp.Process(file, strings.NewReader(source), &out); err != nil {
		var se *preprocessor.SyntaxError
		if errors.As(err, &se) {
			return "", &DirectiveError{File: se.File, Line: se.Line, Msg: se.Msg}
		}
		return "", err
	}
	Logger().Debug("glslext: processed", "file", file, "bytes", out.Len())
	return out.String(), nil
}
