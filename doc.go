// Package glslext preprocesses GLSL shader sources before compilation.
//
// An [Extension] carries a target version, a table of macros and a cache of
// header fragments. [Extension.Process] turns one shader unit into a single
// self-contained text:
//
//	#version 330 core
//	#define MAX_LIGHTS 8
//	#line 1
//	...source, with #include <name> replaced by the header text...
//
// Headers are loaded on first use from shaders/lib/<name>.glsl through a
// [Resolver], typically a [ResPaths] listing resource roots in priority order,
// and stay cached for the lifetime of the Extension.
//
//	ext := glslext.New(
//	    glslext.WithTargetVersion(glsl.Version330),
//	    glslext.WithResolver(glslext.NewResPaths("res")),
//	)
//	ext.Define("MAX_LIGHTS", "8")
//	out, err := ext.Process("main.glslv", src)
//
// Redundant #version lines in the source are dropped and reported to the
// configured [Sink]. Other directives (#define, #ifdef, ...) are passed
// through to the shader compiler untouched.
package glslext
