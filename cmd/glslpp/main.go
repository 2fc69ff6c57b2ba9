package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/naga/glsl"
	"github.com/spf13/pflag"

	"github.com/fwessels/glslext"
	"github.com/fwessels/glslext/internal/textio"
)

var targets = map[string]glsl.Version{
	"gl330": glsl.Version330,
	"gl400": glsl.Version400,
	"gl410": glsl.Version410,
	"gl420": glsl.Version420,
	"gl430": glsl.Version430,
	"gl450": glsl.Version450,
	"gl460": glsl.Version460,
	"es300": glsl.VersionES300,
	"es310": glsl.VersionES310,
	"es320": glsl.VersionES320,
}

func targetNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type styles struct {
	loc  lipgloss.Style
	warn lipgloss.Style
	err  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		loc:  r.NewStyle().Bold(true),
		warn: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		err:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("glslpp", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	target := flags.StringP("target", "t", "gl330", "target GLSL version: "+strings.Join(targetNames(), " "))
	version := flags.StringP("glsl-version", "V", "", "raw #version token, overrides --target")
	defines := flags.StringArrayP("define", "D", nil, "define macro NAME[=VALUE] (repeatable)")
	roots := flags.StringArrayP("include", "I", []string{"."}, "resource root searched for shaders/lib/<name>.glsl (repeatable, in order)")
	headers := flags.StringArrayP("header", "H", nil, "preload header NAME=FILE instead of resolving it (repeatable)")
	output := flags.StringP("output", "o", "", "write result to file instead of stdout")
	verbose := flags.BoolP("verbose", "v", false, "debug logging to stderr")

	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: glslpp [flags] <shader.glsl>")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	st := newStyles(stderr)
	fail := func(code int, err error) int {
		fmt.Fprintf(stderr, "%s %v\n", st.err.Render("error:"), err)
		return code
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fail(1, err)
		flags.Usage()
		return 1
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}

	if *verbose {
		glslext.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ext := glslext.New(
		glslext.WithResolver(glslext.NewResPaths(*roots...)),
		glslext.WithSink(glslext.SinkFunc(func(d glslext.Diagnostic) {
			fmt.Fprintf(stderr, "%s %s %s\n",
				st.loc.Render(fmt.Sprintf("%s:%d:", d.File, d.Line)), st.warn.Render("warning:"), d.Message)
		})),
	)
	if *version != "" {
		ext.SetVersion(*version)
	} else {
		v, ok := targets[*target]
		if !ok {
			return fail(1, fmt.Errorf("unknown target %q (want one of %s)", *target, strings.Join(targetNames(), ", ")))
		}
		ext.SetTargetVersion(v)
	}

	for _, d := range *defines {
		name, value := glslext.ParseDefine(d)
		if name == "" {
			return fail(1, fmt.Errorf("bad define %q", d))
		}
		ext.Define(name, value)
	}

	for _, h := range *headers {
		name, path, ok := strings.Cut(h, "=")
		if !ok || name == "" || path == "" {
			return fail(1, fmt.Errorf("bad header %q, want NAME=FILE", h))
		}
		text, err := textio.ReadFile(path)
		if err != nil {
			return fail(2, err)
		}
		ext.AddHeader(name, text)
	}

	fname := flags.Arg(0)
	source, err := textio.ReadFile(fname)
	if err != nil {
		return fail(2, err)
	}
	processed, err := ext.Process(fname, source)
	if err != nil {
		return fail(2, err)
	}

	if *output == "" {
		if _, err := io.WriteString(stdout, processed); err != nil {
			return fail(2, err)
		}
		return 0
	}
	if err := os.WriteFile(*output, []byte(processed), 0644); err != nil {
		return fail(2, err)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
