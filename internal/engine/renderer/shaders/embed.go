// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms textured meshes lit by the sun.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades textured meshes with ambient and directional light.
//
//go:embed lit.frag
var LitFragmentShader string

// UnlitVertexShader transforms position-only geometry.
//
//go:embed unlit.vert
var UnlitVertexShader string

// UnlitFragmentShader draws a flat color.
//
//go:embed unlit.frag
var UnlitFragmentShader string
