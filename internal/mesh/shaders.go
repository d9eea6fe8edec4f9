// SPDX-License-Identifier: Unlicense OR MIT

package mesh

// Attribute names bound to locations 0, 1, ... in the order listed.
var (
	FlatAttribs  = []string{"a_pos"}
	ColorAttribs = []string{"a_pos", "a_color"}
	TextAttribs  = []string{"a_pos", "a_uv"}
)

const FlatVSrc = `#version 100

attribute vec2 a_pos;

void main() {
	gl_Position = vec4(a_pos, 0.0, 1.0);
}
`

const FlatFSrc = `#version 100

precision mediump float;

uniform vec4 u_color;

void main() {
	gl_FragColor = u_color;
}
`

const ColorVSrc = `#version 100

uniform mat4 u_mvp;

attribute vec2 a_pos;
attribute vec3 a_color;

varying vec3 v_color;

void main() {
	v_color = a_color;
	gl_Position = u_mvp * vec4(a_pos, 0.0, 1.0);
}
`

const ColorFSrc = `#version 100

precision mediump float;

varying vec3 v_color;

void main() {
	gl_FragColor = vec4(v_color, 1.0);
}
`

const TextVSrc = `#version 100

uniform mat4 u_proj;

attribute vec2 a_pos;
attribute vec2 a_uv;

varying vec2 v_uv;

void main() {
	v_uv = a_uv;
	gl_Position = u_proj * vec4(a_pos, 0.0, 1.0);
}
`

// TextFSrc samples the glyph coverage from the alpha channel and applies
// it to a solid color.
const TextFSrc = `#version 100

precision mediump float;

uniform sampler2D u_tex;
uniform vec4 u_color;

varying vec2 v_uv;

void main() {
	float a = texture2D(u_tex, v_uv).a;
	gl_FragColor = vec4(u_color.rgb, u_color.a * a);
}
`
