package preprocessor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testHeaders = map[string]string{
	"fog":    "float fogFactor;",
	"light":  "uniform vec3 u_light;\nuniform float u_intensity;",
	"nested": "#include <fog>\nvec3 apply(vec3 c);",
}

func mapHeaders(m map[string]string) HeaderFunc {
	return func(name string) (string, error) {
		text, ok := m[name]
		if !ok {
			return "", fmt.Errorf("no header %q", name)
		}
		return text, nil
	}
}

type warning struct {
	File string
	Line int
	Msg  string
}

func process(t *testing.T, defines []Define, input string) (string, []warning, error) {
	t.Helper()
	var warnings []warning
	p := &Preprocessor{
		Version: "330",
		Defines: defines,
		Header:  mapHeaders(testHeaders),
		Warn: func(filename string, lineNo int, msg string) {
			warnings = append(warnings, warning{filename, lineNo, msg})
		},
	}
	var out strings.Builder
	err := p.Process("main.glsl", strings.NewReader(input), &out)
	return out.String(), warnings, err
}

func lines(a ...string) string {
	return strings.Join(a, "\n") + "\n"
}

type processTest struct {
	name    string
	defines []Define
	input   string
	output  string
}

var processTests = []processTest{
	{
		"empty",
		nil,
		"",
		lines("#version 330", "#line 1"),
	},
	{
		"passthrough",
		nil,
		lines("void main() {", "}"),
		lines("#version 330", "#line 1", "void main() {", "}"),
	},
	{
		"last line without newline",
		nil,
		"a\nb",
		lines("#version 330", "#line 1", "a") + "b",
	},
	{
		"defines in given order",
		[]Define{{"A", "1"}, {"B", "2"}, {"FLAG", ""}},
		"x\n",
		lines("#version 330", "#define A 1", "#define B 2", "#define FLAG", "#line 1", "x"),
	},
	{
		"include",
		nil,
		lines("#include <fog>", "void main(){}"),
		lines("#version 330", "#line 1", "#line 1", "float fogFactor;", "#line 2", "void main(){}"),
	},
	{
		"include without space",
		nil,
		lines("#include<fog>"),
		lines("#version 330", "#line 1", "#line 1", "float fogFactor;", "#line 2"),
	},
	{
		"include with inner whitespace",
		nil,
		lines("#   include   <fog>   "),
		lines("#version 330", "#line 1", "#line 1", "float fogFactor;", "#line 2"),
	},
	{
		"include restores line after several lines",
		nil,
		lines("a", "b", "#include <light>", "c"),
		lines("#version 330", "#line 1", "a", "b",
			"#line 1", "uniform vec3 u_light;", "uniform float u_intensity;", "#line 4", "c"),
	},
	{
		"include last line without newline",
		nil,
		"#include <fog>",
		lines("#version 330", "#line 1", "#line 1", "float fogFactor;", "#line 2"),
	},
	{
		"header is not scanned",
		nil,
		lines("#include <nested>"),
		lines("#version 330", "#line 1", "#line 1", "#include <fog>", "vec3 apply(vec3 c);", "#line 2"),
	},
	{
		"version removed",
		nil,
		lines("#version 330 core", "void main(){}"),
		lines("#version 330", "#line 1", "#line 2", "void main(){}"),
	},
	{
		"other directives pass through",
		nil,
		lines("#define X 1", "#ifdef X", "#endif", "#extension GL_ARB_foo : enable"),
		lines("#version 330", "#line 1", "#define X 1", "#ifdef X", "#endif", "#extension GL_ARB_foo : enable"),
	},
	{
		"indented directive passes through",
		nil,
		lines("  #include <fog>"),
		lines("#version 330", "#line 1", "  #include <fog>"),
	},
	{
		"word containing include passes through",
		nil,
		lines("#pragma include_guard", "#includes <fog>", "#versioned"),
		lines("#version 330", "#line 1", "#pragma include_guard", "#includes <fog>", "#versioned"),
	},
	{
		"crlf line endings",
		nil,
		"#include <fog>\r\nx\r\n",
		lines("#version 330", "#line 1", "#line 1", "float fogFactor;", "#line 2") + "x\r\n",
	},
}

func TestProcess(t *testing.T) {
	for _, tt := range processTests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := process(t, tt.defines, tt.input)
			if err != nil {
				t.Fatalf("process error: %v", err)
			}
			if diff := cmp.Diff(tt.output, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessVersionWarning(t *testing.T) {
	_, warnings, err := process(t, nil, lines("a", "#version 450", "b", "# version 100"))
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	want := []warning{
		{"main.glsl", 2, MsgRemovedVersion},
		{"main.glsl", 4, MsgRemovedVersion},
	}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

type badProcessTest struct {
	input string
	error string
}

var badProcessTests = []badProcessTest{
	{
		"#include foo\n",
		"main.glsl:1: expected '#include <filename>' syntax",
	},
	{
		"#include <>\n",
		"main.glsl:1: invalid 'include' syntax",
	},
	{
		"#include\n",
		"main.glsl:1: invalid 'include' syntax",
	},
	{
		"a\nb\n#include \"fog\"\n",
		"main.glsl:3: expected '#include <filename>' syntax",
	},
	{
		"#include <fog\n",
		"main.glsl:1: expected '#include <filename>' syntax",
	},
}

func TestBadProcess(t *testing.T) {
	for _, tt := range badProcessTests {
		t.Run(tt.error, func(t *testing.T) {
			got, _, err := process(t, nil, tt.input)
			if err == nil {
				t.Fatalf("expected error %q", tt.error)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is %T, want *SyntaxError", err, err)
			}
			if diff := cmp.Diff(tt.error, err.Error()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if got != "" {
				t.Errorf("partial output written: %q", got)
			}
		})
	}
}

func TestProcessHeaderError(t *testing.T) {
	_, _, err := process(t, nil, lines("void f();", "#include <missing>"))
	if err == nil {
		t.Fatal("expected error for missing header")
	}
	if diff := cmp.Diff(`no header "missing"`, err.Error()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessNoHeaderFunc(t *testing.T) {
	p := &Preprocessor{Version: "330"}
	var out strings.Builder
	if err := p.Process("main.glsl", strings.NewReader("x\n"), &out); err == nil {
		t.Fatal("expected error without header source")
	}
}

func TestSplitDirective(t *testing.T) {
	tests := []struct {
		line string
		want directiveFields
	}{
		{"#include <a>", directiveFields{"include", "<a>"}},
		{"#include<a>", directiveFields{"include", "<a>"}},
		{"#  version 330 core ", directiveFields{"version", "330 core"}},
		{"#", directiveFields{}},
		{"# <a>", directiveFields{"", "<a>"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := splitDirective(tt.line)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(directiveFields{})); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDefine(t *testing.T) {
	tests := []struct {
		in          string
		name, value string
	}{
		{"A=1", "A", "1"},
		{"A", "A", "1"},
		{"A=", "A", ""},
		{"A=b=c", "A", "b=c"},
	}
	for _, tt := range tests {
		name, value := ParseDefine(tt.in)
		if name != tt.name || value != tt.value {
			t.Errorf("ParseDefine(%q) = %q, %q; want %q, %q", tt.in, name, value, tt.name, tt.value)
		}
	}
}
