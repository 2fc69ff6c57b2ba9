package preprocessor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ---------------- Preprocessor ----------------

// HeaderFunc returns the text of the named header, loading it if needed.
type HeaderFunc func(name string) (string, error)

// WarnFunc receives non-fatal diagnostics.
type WarnFunc func(filename string, lineNo int, msg string)

type Define struct {
	Name  string
	Value string
}

// Preprocessor performs a single pass over one shader unit. Defines are
// emitted in the order given; callers sort them.
type Preprocessor struct {
	Version string
	Defines []Define
	Header  HeaderFunc
	Warn    WarnFunc
}

// SyntaxError reports a malformed directive.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

const (
	MsgInvalidInclude  = "invalid 'include' syntax"
	MsgExpectedInclude = "expected '#include <filename>' syntax"
	MsgRemovedVersion  = "removed redundant #version directive"
)

// Process preprocesses file content and writes the expanded output. Nothing
// is written to w unless the whole unit was processed successfully.
func (p *Preprocessor) Process(filename string, r io.Reader, w io.Writer) error {
	if p.Header == nil {
		return errors.New("preprocessor: no header source configured")
	}

	var out bytes.Buffer
	out.WriteString("#version " + p.Version + "\n")
	for _, d := range p.Defines {
		writeDefine(&out, d)
	}
	writeLineMarker(&out, 1)

	lr := newLineReader(r)
	lineNo := 1
	for {
		line, hasNL, ok, err := lr.next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if !ok {
			break
		}

		if strings.HasPrefix(line, "#") {
			fields := splitDirective(line)
			switch fields.cmd {
			case "include":
				name, msg := parseIncludeArg(fields.arg)
				if msg != "" {
					return &SyntaxError{File: filename, Line: lineNo, Msg: msg}
				}
				text, err := p.Header(name)
				if err != nil {
					return err
				}
				writeLineMarker(&out, 1)
				out.WriteString(text)
				out.WriteByte('\n')
				lineNo++
				writeLineMarker(&out, lineNo)
				continue

			case "version":
				if p.Warn != nil {
					p.Warn(filename, lineNo, MsgRemovedVersion)
				}
				lineNo++
				writeLineMarker(&out, lineNo)
				continue
			}
		}

		lineNo++
		out.WriteString(line)
		if hasNL {
			out.WriteByte('\n')
		}
	}

	_, err := w.Write(out.Bytes())
	return err
}

func writeDefine(out *bytes.Buffer, d Define) {
	out.WriteString("#define ")
	out.WriteString(d.Name)
	if d.Value != "" {
		out.WriteByte(' ')
		out.WriteString(d.Value)
	}
	out.WriteByte('\n')
}

func writeLineMarker(out *bytes.Buffer, lineNo int) {
	out.WriteString("#line ")
	out.WriteString(strconv.Itoa(lineNo))
	out.WriteByte('\n')
}

type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) next() (line string, hasNL bool, ok bool, err error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, false, err
	}
	if len(s) == 0 && err == io.EOF {
		return "", false, false, io.EOF
	}
	hasNL = strings.HasSuffix(s, "\n")
	if hasNL {
		s = s[:len(s)-1]
	}
	return s, hasNL, true, nil
}

type directiveFields struct {
	cmd string
	arg string
}

// splitDirective splits a line starting with '#' into the directive word and
// its trimmed argument. The word is the leading run of identifier characters,
// so "#include<a>" yields cmd "include" and arg "<a>".
func splitDirective(line string) directiveFields {
	rest := strings.TrimSpace(line[1:])
	i := 0
	for i < len(rest) && isIdentPart(rest[i]) {
		i++
	}
	return directiveFields{cmd: rest[:i], arg: strings.TrimSpace(rest[i:])}
}

// parseIncludeArg returns the header name of an include argument, or a
// non-empty message when the argument is malformed.
func parseIncludeArg(arg string) (name string, msg string) {
	if len(arg) < 3 {
		return "", MsgInvalidInclude
	}
	if arg[0] != '<' || arg[len(arg)-1] != '>' {
		return "", MsgExpectedInclude
	}
	return arg[1 : len(arg)-1], ""
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// ParseDefine splits a command line definition of the form NAME=VALUE.
// A bare NAME defines it as 1.
func ParseDefine(s string) (name, value string) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, "1"
}
