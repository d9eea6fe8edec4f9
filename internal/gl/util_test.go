// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"strings"
	"testing"
)

func TestGoString(t *testing.T) {
	tests := [][2]string{
		{"Hello\x00", "Hello"},
		{"\x00", ""},
		{"log\x00junk", "log"},
		{"unterminated", "unterminated"},
		{"", ""},
	}
	for _, test := range tests {
		got := GoString([]byte(test[0]))
		if exp := test[1]; exp != got {
			t.Errorf("expected %q got %q", exp, got)
		}
	}
}

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in   string
		want [2]int
		ok   bool
	}{
		{"OpenGL ES 2.0 Mesa 21.2.6", [2]int{2, 0}, true},
		{"OpenGL ES 3.2 NVIDIA 470.86", [2]int{3, 2}, true},
		{"4.6 (Compatibility Profile) Mesa", [2]int{4, 6}, true},
		{"WebGL", [2]int{}, false},
	}
	for _, test := range tests {
		got, err := ParseGLVersion(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%q: unexpected error state %v", test.in, err)
			continue
		}
		if test.ok && got != test.want {
			t.Errorf("%q: got %v, want %v", test.in, got, test.want)
		}
	}
}

func TestFloat32Bytes(t *testing.T) {
	if b := Float32Bytes(nil); b != nil {
		t.Errorf("got %v for nil slice", b)
	}
	b := Float32Bytes([]float32{1, 0})
	if len(b) != 8 {
		t.Fatalf("got %d bytes, want 8", len(b))
	}
	// 1.0 is 0x3f800000; the exponent byte is non-zero in either byte order.
	if b[0]|b[3] == 0 {
		t.Errorf("1.0 encoded as %v", b[:4])
	}
	for _, c := range b[4:] {
		if c != 0 {
			t.Errorf("0.0 encoded as %v", b[4:])
		}
	}
}

// fakeGL records the calls CreateProgram makes.
type fakeGL struct {
	next       uint
	failShader Enum
	failLink   bool
	types      map[Shader]Enum
	deleted    []uint
	deletedPrg []uint
	attached   []Shader
	bound      map[string]Attrib
}

func newFakeGL() *fakeGL {
	return &fakeGL{next: 1, types: make(map[Shader]Enum), bound: make(map[string]Attrib)}
}

func (g *fakeGL) CreateShader(ty Enum) Shader {
	s := Shader{g.next}
	g.next++
	g.types[s] = ty
	return s
}

func (g *fakeGL) ShaderSource(s Shader, src string) {}
func (g *fakeGL) CompileShader(s Shader)            {}

func (g *fakeGL) GetShaderi(s Shader, pname Enum) int {
	if pname == COMPILE_STATUS && g.types[s] == g.failShader {
		return FALSE
	}
	return TRUE
}

func (g *fakeGL) GetShaderInfoLog(s Shader) string {
	return "0:3(1): error: syntax error\n"
}

func (g *fakeGL) DeleteShader(s Shader) { g.deleted = append(g.deleted, s.V) }

func (g *fakeGL) CreateProgram() Program {
	p := Program{g.next}
	g.next++
	return p
}

func (g *fakeGL) AttachShader(p Program, s Shader) { g.attached = append(g.attached, s) }

func (g *fakeGL) BindAttribLocation(p Program, a Attrib, name string) { g.bound[name] = a }

func (g *fakeGL) LinkProgram(p Program) {}

func (g *fakeGL) GetProgrami(p Program, pname Enum) int {
	if pname == LINK_STATUS && g.failLink {
		return FALSE
	}
	return TRUE
}

func (g *fakeGL) GetProgramInfoLog(p Program) string { return "link error" }

func (g *fakeGL) DeleteProgram(p Program) { g.deletedPrg = append(g.deletedPrg, p.V) }

func TestCreateProgram(t *testing.T) {
	g := newFakeGL()
	p, err := CreateProgram(g, "vs", "fs", []string{"a_pos", "a_color"})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Valid() {
		t.Fatal("invalid program")
	}
	if len(g.attached) != 2 {
		t.Errorf("attached %d shaders, want 2", len(g.attached))
	}
	if g.bound["a_pos"] != 0 || g.bound["a_color"] != 1 {
		t.Errorf("attribute bindings %v", g.bound)
	}
	// Both shaders are released once linked.
	if len(g.deleted) != 2 {
		t.Errorf("deleted shaders %v, want both", g.deleted)
	}
}

func TestCreateProgramCompileError(t *testing.T) {
	for _, typ := range []Enum{VERTEX_SHADER, FRAGMENT_SHADER} {
		g := newFakeGL()
		g.failShader = typ
		_, err := CreateProgram(g, "vs", "fs", nil)
		if err == nil {
			t.Fatalf("%s: compile error not reported", shaderName(typ))
		}
		if !strings.Contains(err.Error(), shaderName(typ)) || !strings.HasSuffix(err.Error(), "syntax error") {
			t.Errorf("unexpected error %q", err)
		}
		// Every shader created is deleted, including the failing one.
		if created := int(g.next - 1); len(g.deleted) != created {
			t.Errorf("%s: deleted %v of %d shaders", shaderName(typ), g.deleted, created)
		}
	}
}

func TestCreateProgramLinkError(t *testing.T) {
	g := newFakeGL()
	g.failLink = true
	_, err := CreateProgram(g, "vs", "fs", nil)
	if err == nil || !strings.Contains(err.Error(), "link error") {
		t.Fatalf("got %v, want link error", err)
	}
	if len(g.deletedPrg) != 1 {
		t.Errorf("program not deleted after link failure")
	}
	if len(g.deleted) != 2 {
		t.Errorf("deleted shaders %v, want both", g.deleted)
	}
}

type fakeLocator map[string]int

func (l fakeLocator) GetUniformLocation(p Program, name string) Uniform {
	if v, ok := l[name]; ok {
		return Uniform{v}
	}
	return Uniform{-1}
}

func TestGetUniformLocation(t *testing.T) {
	l := fakeLocator{"u_color": 0, "u_mvp": 3}
	if u, err := GetUniformLocation(l, Program{1}, "u_mvp"); err != nil || u.V != 3 {
		t.Errorf("u_mvp: got %v, %v", u, err)
	}
	if u, err := GetUniformLocation(l, Program{1}, "u_color"); err != nil || u.V != 0 {
		t.Errorf("u_color at location 0: got %v, %v", u, err)
	}
	if _, err := GetUniformLocation(l, Program{1}, "u_missing"); err == nil {
		t.Error("missing uniform not reported")
	}
}
