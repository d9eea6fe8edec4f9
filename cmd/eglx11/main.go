// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

// Command eglx11 opens an X11 window with an OpenGL ES 2.0 surface and
// renders one of the demo scenes at a fixed rate until the window is
// closed.
//
// The variants, in tutorial order:
//
//	clear     clear the window to grey
//	triangle  one flat colored triangle
//	quad      a quad with a color per corner
//	anim      the quad, rotating
//	text      the rotating quad with the frame rate drawn on top
//	text2     the same, with cached glyph textures and two vertex buffers
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/eglx11/eglx11/internal/egl"
	"github.com/eglx11/eglx11/internal/gl"
	"github.com/eglx11/eglx11/internal/glyph"
	"github.com/eglx11/eglx11/internal/loop"
	"github.com/eglx11/eglx11/internal/scene"
	"github.com/eglx11/eglx11/internal/x11"
)

var (
	variant  = flag.String("variant", "clear", "demo `scene`: clear, triangle, quad, anim, text or text2")
	title    = flag.String("title", "eglx11", "window title")
	posX     = flag.Int("x", 0, "window x position")
	posY     = flag.Int("y", 0, "window y position")
	width    = flag.Int("width", 1280, "window width")
	height   = flag.Int("height", 720, "window height")
	fps      = flag.Float64("fps", 60, "target frame rate without -vsync")
	vsync    = flag.Bool("vsync", false, "pace frames with the swap interval instead of polling")
	fontPath = flag.String("font", "", "TrueType or OpenType `file` for the text overlay (default embedded Go Mono)")
	fontSize = flag.Float64("fontsize", 48, "text overlay size in points")
	speed    = flag.Float64("speed", scene.DefaultSpeed, "rotation speed in revolutions per second")
	display  = flag.String("display", "", "X `display` to connect to (default $DISPLAY)")
	frames   = flag.Int("frames", 0, "exit after `n` frames; 0 runs until the window is closed")
	verbose  = flag.Bool("v", false, "log per-frame timing")
)

func init() {
	// EGL contexts are current per OS thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Prefix:          "eglx11",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, logger)
	stop()
	if err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context, logger *log.Logger) error {
	interval, err := loop.IntervalFor(*fps)
	if err != nil {
		return err
	}
	d, err := x11.OpenDisplay(*display)
	if err != nil {
		return err
	}
	defer d.Close()

	ectx, err := egl.NewContext(egl.NativeDisplayType(d.Native()))
	if err != nil {
		return fmt.Errorf("egl: %w", err)
	}
	defer ectx.Release()
	major, minor := ectx.Version()
	logger.Info("EGL initialized", "version", fmt.Sprintf("%d.%d", major, minor), "vendor", ectx.Vendor(), "visual", ectx.VisualID())

	win, err := x11.NewWindow(d, x11.Options{
		Title:    *title,
		X:        *posX,
		Y:        *posY,
		Width:    *width,
		Height:   *height,
		VisualID: ectx.VisualID(),
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	if err := ectx.CreateSurface(egl.NativeWindowType(win.Native()), *width, *height); err != nil {
		return fmt.Errorf("egl: %w", err)
	}
	defer ectx.ReleaseSurface()
	if err := ectx.MakeCurrent(); err != nil {
		return fmt.Errorf("egl: %w", err)
	}
	defer ectx.ReleaseCurrent()
	throttled := *vsync
	if err := ectx.EnableVSync(*vsync); err != nil {
		if *vsync {
			logger.Warn("vsync unavailable, polling instead", "fps", *fps, "err", err)
		} else {
			logger.Warn("swap interval unchanged", "err", err)
		}
		throttled = false
	}

	f := new(gl.Functions)
	glVer := f.GetString(gl.VERSION)
	logger.Info("GLES context current",
		"version", glVer,
		"renderer", f.GetString(gl.RENDERER),
		"glsl", f.GetString(gl.SHADING_LANGUAGE_VERSION))
	ver, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return err
	}
	if ver[0] < 2 {
		return fmt.Errorf("OpenGL ES %d.%d context, need 2.0 or later", ver[0], ver[1])
	}

	var face *glyph.Face
	if *variant == "text" || *variant == "text2" {
		face, err = glyph.LoadFace(*fontPath, *fontSize)
		if err != nil {
			return err
		}
		defer face.Close()
	}
	sw, sh := ectx.Size()
	sc, err := scene.New(*variant, f, scene.Options{
		Width:  sw,
		Height: sh,
		Face:   face,
		Speed:  *speed,
	})
	if err != nil {
		return err
	}
	defer sc.Release()

	win.OnResize(func(w, h int) {
		logger.Debug("resize", "width", w, "height", h)
		sc.Resize(w, h)
	})
	win.OnPointer(func(x, y int, left bool) {
		if left {
			logger.Debug("drag", "x", x, "y", y)
		}
	})

	l := &loop.Loop{
		Render:    sc.Draw,
		Present:   ectx.Present,
		Pacer:     loop.NewPacer(win, throttled, interval),
		Logger:    logger,
		MaxFrames: *frames,
	}
	logger.Info("rendering", "variant", *variant, "vsync", throttled)
	stats, err := l.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("stopped",
		"frames", stats.Frames,
		"fps", fmt.Sprintf("%.1f", stats.Rate()),
		"median", stats.Median(),
		"max", stats.Max())
	return err
}
