// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package egl

import (
	"os"
	"testing"
)

func TestDefaultDisplayContext(t *testing.T) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("EGL_PLATFORM") == "" {
		t.Skip("no display available")
	}
	var disp NativeDisplayType
	c, err := NewContext(disp)
	if err != nil {
		t.Skipf("EGL unavailable: %v", err)
	}
	defer c.Release()
	if major, _ := c.Version(); major < 1 {
		t.Errorf("EGL major version %d", major)
	}
	if err := c.MakeCurrent(); err == nil {
		t.Error("MakeCurrent succeeded without a surface")
	}
}
