// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ShadedVertexShader is the vertex shader for lit meshes.
//
//go:embed shaded.vert
var ShadedVertexShader string

// ShadedFragmentShader is the fragment shader for lit meshes: Lambert
// diffuse from point, directional and spot lights plus ambient and emission.
//
//go:embed shaded.frag
var ShadedFragmentShader string
