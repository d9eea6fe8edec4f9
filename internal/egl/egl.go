// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

// Package egl creates OpenGL ES 2.0 contexts and window surfaces.
package egl

import (
	"errors"
	"fmt"
)

// Context is an EGL display connection with one GLES2 context and at
// most one window surface.
type Context struct {
	disp          _EGLDisplay
	eglCtx        *eglContext
	eglSurf       _EGLSurface
	width, height int
}

type eglContext struct {
	config       _EGLConfig
	ctx          _EGLContext
	visualID     int
	major, minor int
}

var (
	nilEGLDisplay _EGLDisplay
	nilEGLSurface _EGLSurface
	nilEGLContext _EGLContext
	nilEGLConfig  _EGLConfig
)

const (
	_EGL_BLUE_SIZE              = 0x3022
	_EGL_CONTEXT_CLIENT_VERSION = 0x3098
	_EGL_DEPTH_SIZE             = 0x3025
	_EGL_GREEN_SIZE             = 0x3023
	_EGL_NATIVE_VISUAL_ID       = 0x302e
	_EGL_NONE                   = 0x3038
	_EGL_OPENGL_ES2_BIT         = 0x4
	_EGL_RED_SIZE               = 0x3024
	_EGL_RENDERABLE_TYPE        = 0x3040
	_EGL_SURFACE_TYPE           = 0x3033
	_EGL_VENDOR                 = 0x3053
	_EGL_VERSION                = 0x3054
	_EGL_WINDOW_BIT             = 0x4
)

// NewContext initializes EGL on the native display disp, chooses a
// window-capable GLES2 configuration with a 16 bit depth buffer and
// creates a context for it.
func NewContext(disp NativeDisplayType) (*Context, error) {
	if err := loadEGL(); err != nil {
		return nil, err
	}
	eglDisp := eglGetDisplay(disp)
	if eglDisp == nilEGLDisplay {
		return nil, fmt.Errorf("eglGetDisplay failed: 0x%x", eglGetError())
	}
	eglCtx, err := createContext(eglDisp)
	if err != nil {
		eglTerminate(eglDisp)
		return nil, err
	}
	return &Context{disp: eglDisp, eglCtx: eglCtx}, nil
}

// Release destroys the surface and context and terminates the display
// connection.
func (c *Context) Release() {
	c.ReleaseSurface()
	if c.eglCtx != nil {
		eglDestroyContext(c.disp, c.eglCtx.ctx)
		c.eglCtx = nil
	}
	if c.disp != nilEGLDisplay {
		eglTerminate(c.disp)
		eglReleaseThread()
		c.disp = nilEGLDisplay
	}
}

// Present swaps the front and back buffers of the surface.
func (c *Context) Present() error {
	if !eglSwapBuffers(c.disp, c.eglSurf) {
		return fmt.Errorf("eglSwapBuffers failed (%x)", eglGetError())
	}
	return nil
}

// VisualID returns the native visual of the chosen configuration. Windows
// must be created with it for CreateSurface to succeed.
func (c *Context) VisualID() int {
	return c.eglCtx.visualID
}

// Version returns the EGL version reported by eglInitialize.
func (c *Context) Version() (major, minor int) {
	return c.eglCtx.major, c.eglCtx.minor
}

// Vendor returns the EGL_VENDOR string.
func (c *Context) Vendor() string {
	return eglQueryString(c.disp, _EGL_VENDOR)
}

// Size returns the dimensions given to the last CreateSurface.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// ReleaseSurface unbinds and destroys the window surface, if any.
func (c *Context) ReleaseSurface() {
	if c.eglSurf == nilEGLSurface {
		return
	}
	eglMakeCurrent(c.disp, nilEGLSurface, nilEGLSurface, nilEGLContext)
	eglDestroySurface(c.disp, c.eglSurf)
	c.eglSurf = nilEGLSurface
}

// CreateSurface creates the window surface for win, replacing any
// previous one.
func (c *Context) CreateSurface(win NativeWindowType, width, height int) error {
	c.ReleaseSurface()
	eglSurf, err := createSurface(c.disp, c.eglCtx, win)
	if err != nil {
		return err
	}
	c.eglSurf = eglSurf
	c.width, c.height = width, height
	return nil
}

// MakeCurrent binds the context and surface to the calling thread.
func (c *Context) MakeCurrent() error {
	if c.eglSurf == nilEGLSurface {
		return errors.New("egl: no surface")
	}
	if !eglMakeCurrent(c.disp, c.eglSurf, c.eglSurf, c.eglCtx.ctx) {
		return fmt.Errorf("eglMakeCurrent error 0x%x", eglGetError())
	}
	return nil
}

// ReleaseCurrent unbinds the context from the calling thread.
func (c *Context) ReleaseCurrent() {
	eglMakeCurrent(c.disp, nilEGLSurface, nilEGLSurface, nilEGLContext)
}

// EnableVSync sets the swap interval to 1 when enable is set, or 0. The
// context must be current.
func (c *Context) EnableVSync(enable bool) error {
	var interval _EGLint
	if enable {
		interval = 1
	}
	if !eglSwapInterval(c.disp, interval) {
		return fmt.Errorf("eglSwapInterval(%d) failed: 0x%x", interval, eglGetError())
	}
	return nil
}

func createContext(eglDisp _EGLDisplay) (*eglContext, error) {
	major, minor, ret := eglInitialize(eglDisp)
	if !ret {
		return nil, fmt.Errorf("eglInitialize failed: 0x%x", eglGetError())
	}
	attribs := []_EGLint{
		_EGL_RENDERABLE_TYPE, _EGL_OPENGL_ES2_BIT,
		_EGL_SURFACE_TYPE, _EGL_WINDOW_BIT,
		_EGL_BLUE_SIZE, 8,
		_EGL_GREEN_SIZE, 8,
		_EGL_RED_SIZE, 8,
		_EGL_DEPTH_SIZE, 16,
		_EGL_NONE,
	}
	eglCfg, ret := eglChooseConfig(eglDisp, attribs)
	if !ret {
		return nil, fmt.Errorf("eglChooseConfig failed: 0x%x", eglGetError())
	}
	if eglCfg == nilEGLConfig {
		return nil, errors.New("eglChooseConfig returned 0 configs")
	}
	visID, ret := eglGetConfigAttrib(eglDisp, eglCfg, _EGL_NATIVE_VISUAL_ID)
	if !ret {
		return nil, errors.New("newContext: eglGetConfigAttrib for _EGL_NATIVE_VISUAL_ID failed")
	}
	ctxAttribs := []_EGLint{
		_EGL_CONTEXT_CLIENT_VERSION, 2,
		_EGL_NONE,
	}
	eglCtx := eglCreateContext(eglDisp, eglCfg, nilEGLContext, ctxAttribs)
	if eglCtx == nilEGLContext {
		return nil, fmt.Errorf("eglCreateContext failed: 0x%x", eglGetError())
	}
	return &eglContext{
		config:   eglCfg,
		ctx:      eglCtx,
		visualID: int(visID),
		major:    int(major),
		minor:    int(minor),
	}, nil
}

func createSurface(disp _EGLDisplay, eglCtx *eglContext, win NativeWindowType) (_EGLSurface, error) {
	surfAttribs := []_EGLint{_EGL_NONE}
	eglSurf := eglCreateWindowSurface(disp, eglCtx.config, win, surfAttribs)
	if eglSurf == nilEGLSurface {
		return nilEGLSurface, fmt.Errorf("eglCreateWindowSurface failed 0x%x", eglGetError())
	}
	return eglSurf, nil
}
