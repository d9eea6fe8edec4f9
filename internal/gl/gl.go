// SPDX-License-Identifier: Unlicense OR MIT

// Package gl wraps the subset of OpenGL ES 2.0 used by the demos.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ALPHA                    = 0x1906
	ARRAY_BUFFER             = 0x8892
	BLEND                    = 0xbe2
	CLAMP_TO_EDGE            = 0x812f
	COLOR_BUFFER_BIT         = 0x4000
	COMPILE_STATUS           = 0x8b81
	DEPTH_BUFFER_BIT         = 0x100
	DEPTH_TEST               = 0xb71
	DYNAMIC_DRAW             = 0x88e8
	EXTENSIONS               = 0x1f03
	FALSE                    = 0
	FLOAT                    = 0x1406
	FRAGMENT_SHADER          = 0x8b30
	INFO_LOG_LENGTH          = 0x8b84
	LINEAR                   = 0x2601
	LINK_STATUS              = 0x8b82
	MAX_TEXTURE_SIZE         = 0xd33
	NEAREST                  = 0x2600
	NO_ERROR                 = 0x0
	ONE                      = 0x1
	ONE_MINUS_SRC_ALPHA      = 0x303
	RENDERER                 = 0x1f01
	SHADING_LANGUAGE_VERSION = 0x8b8c
	SRC_ALPHA                = 0x302
	STATIC_DRAW              = 0x88e4
	STREAM_DRAW              = 0x88e0
	TEXTURE_2D               = 0xde1
	TEXTURE_MAG_FILTER       = 0x2800
	TEXTURE_MIN_FILTER       = 0x2801
	TEXTURE_WRAP_S           = 0x2802
	TEXTURE_WRAP_T           = 0x2803
	TEXTURE0                 = 0x84c0
	TRIANGLE_STRIP           = 0x5
	TRIANGLES                = 0x4
	TRUE                     = 1
	UNPACK_ALIGNMENT         = 0xcf5
	UNSIGNED_BYTE            = 0x1401
	VENDOR                   = 0x1f00
	VERSION                  = 0x1f02
	VERTEX_SHADER            = 0x8b31
)
