// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd
// +build linux freebsd

package main_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xprop"
)

const (
	width  = 320
	height = 240
)

// startX starts a virtual X server on a random display and returns the
// display name.
func startX(t *testing.T) string {
	if _, err := exec.LookPath("Xvfb"); err != nil {
		t.Skip("Xvfb needed to run end-to-end tests")
	}
	// Pick a random display number between 1 and 100,000. Most machines
	// will only be using :0.
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	display := fmt.Sprintf(":%d", rnd.Intn(100000)+1)

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, "Xvfb", "-screen", "0", "640x480x24", display)
	combined := &bytes.Buffer{}
	cmd.Stdout = combined
	cmd.Stderr = combined
	if err := cmd.Start(); err != nil {
		t.Fatal(err)
	}
	var stopping atomic.Bool
	done := make(chan struct{})
	go func() {
		if err := cmd.Wait(); err != nil && !stopping.Load() {
			io.Copy(os.Stdout, combined)
			t.Error(err)
		}
		close(done)
	}()
	t.Cleanup(func() {
		stopping.Store(true)
		// Give the server a chance to clean up after itself in /tmp.
		cmd.Process.Signal(os.Interrupt)
		time.Sleep(10 * time.Millisecond)
		cancel()
		<-done
	})

	// This socket path isn't terribly portable, but the xgb library does
	// the same.
	socket := fmt.Sprintf("/tmp/.X11-unix/X%s", display[1:])
	for i := 0; ; i++ {
		time.Sleep(10 * time.Millisecond)
		if _, err := os.Stat(socket); err == nil {
			break
		}
		if i >= 100 {
			t.Fatalf("timed out waiting for %s", socket)
		}
	}
	return display
}

func build(t *testing.T) string {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command needed to build the program")
	}
	bin := filepath.Join(t.TempDir(), "eglx11")
	cmd := exec.Command("go", "build", "-o="+bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("could not build program: %s:\n%s", err, out)
	}
	return bin
}

type app struct {
	cmd  *exec.Cmd
	out  *bytes.Buffer
	done chan error
}

func start(t *testing.T, bin, display string, args ...string) *app {
	a := &app{
		cmd:  exec.Command(bin, args...),
		out:  new(bytes.Buffer),
		done: make(chan error, 1),
	}
	a.cmd.Env = append(os.Environ(), "DISPLAY="+display)
	a.cmd.Stdout = a.out
	a.cmd.Stderr = a.out
	if err := a.cmd.Start(); err != nil {
		t.Fatal(err)
	}
	go func() { a.done <- a.cmd.Wait() }()
	t.Cleanup(func() { a.cmd.Process.Kill() })
	return a
}

func connect(t *testing.T, display string) *xgbutil.XUtil {
	if !testing.Verbose() {
		xgb.Logger.SetOutput(io.Discard)
		xgbutil.Logger.SetOutput(io.Discard)
	}
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		xu.Conn().Close()
		// xgb panics if the server exits before its connection has shut
		// down fully.
		time.Sleep(10 * time.Millisecond)
	})
	return xu
}

// findWindow waits for a top level window titled name. It skips the test
// if the program exits first, which happens on machines without a usable
// EGL driver.
func findWindow(t *testing.T, xu *xgbutil.XUtil, a *app, name string) xproto.Window {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case err := <-a.done:
			t.Skipf("program exited before mapping its window (%v):\n%s", err, a.out)
		default:
		}
		tree, err := xproto.QueryTree(xu.Conn(), xu.RootWin()).Reply()
		if err != nil {
			t.Fatal(err)
		}
		for _, w := range tree.Children {
			if title, err := icccm.WmNameGet(xu, w); err == nil && title == name {
				return w
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("no window titled %q:\n%s", name, a.out)
	return 0
}

func closeWindow(t *testing.T, xu *xgbutil.XUtil, w xproto.Window) {
	protocols, err := xprop.Atm(xu, "WM_PROTOCOLS")
	if err != nil {
		t.Fatal(err)
	}
	del, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		t.Fatal(err)
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(del), 0, 0, 0, 0}),
	}
	err = xproto.SendEventChecked(xu.Conn(), false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
	if err != nil {
		t.Fatal(err)
	}
}

func wait(t *testing.T, a *app, timeout time.Duration) {
	select {
	case err := <-a.done:
		if err != nil {
			t.Fatalf("program failed: %v\n%s", err, a.out)
		}
	case <-time.After(timeout):
		t.Fatalf("program still running after %v:\n%s", timeout, a.out)
	}
}

func TestCloseWindow(t *testing.T) {
	display := startX(t)
	bin := build(t)
	for _, variant := range []string{"clear", "text2"} {
		t.Run(variant, func(t *testing.T) {
			title := "eglx11-" + variant
			a := start(t, bin, display,
				"-variant", variant,
				"-title", title,
				"-width", fmt.Sprint(width),
				"-height", fmt.Sprint(height))
			xu := connect(t, display)
			w := findWindow(t, xu, a, title)
			if variant == "clear" {
				// Let a few frames render.
				time.Sleep(200 * time.Millisecond)
				wantGrey(t, xu, w)
			}
			closeWindow(t, xu, w)
			wait(t, a, 5*time.Second)
		})
	}
}

func TestFrameLimit(t *testing.T) {
	display := startX(t)
	bin := build(t)
	a := start(t, bin, display, "-variant", "anim", "-fps", "30", "-frames", "60", "-title", "eglx11-frames")
	xu := connect(t, display)
	findWindow(t, xu, a, "eglx11-frames")
	wait(t, a, 10*time.Second)
}

func wantGrey(t *testing.T, xu *xgbutil.XUtil, w xproto.Window) {
	t.Helper()
	img, err := xgraphics.NewDrawable(xu, xproto.Drawable(w))
	if err != nil {
		t.Fatal(err)
	}
	size := img.Bounds().Size()
	if size.X != width || size.Y != height {
		t.Fatalf("window is %dx%d, want %dx%d", size.X, size.Y, width, height)
	}
	for _, p := range [][2]int{{5, 5}, {width - 5, height - 5}, {width / 2, height / 2}} {
		r, g, b, _ := img.At(p[0], p[1]).RGBA()
		for _, c := range []uint32{r, g, b} {
			if c < 0x7000 || c > 0x9000 {
				t.Errorf("pixel at %v is (0x%x, 0x%x, 0x%x), want grey", p, r, g, b)
				break
			}
		}
	}
}
