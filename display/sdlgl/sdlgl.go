// This file is part of Quadra.
//
// Quadra is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Quadra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Quadra.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlgl is the SDL2 implementation of the display. The window runs
// on its own OS-locked goroutine and owns the one and only GL context. The
// capture protocol talks to it through the handshake and the interop layer,
// never directly.
//
// Quad buffered stereo is used when the driver offers it. Otherwise the two
// eyes are shown side by side in a double width window, which is also the
// format simple stereo TVs and projectors accept.
package sdlgl

import (
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/capture"
	"github.com/quadrastereo/quadra/frame/interop"
	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/settings"
	"github.com/quadrastereo/quadra/userinput"
	"github.com/quadrastereo/quadra/version"
)

// Error patterns for the sdlgl package.
const (
	DisplayError = "sdlgl: %v"
)

// how often the display thread looks for SDL events when no frames are
// arriving.
const pollPeriod = 5 * time.Millisecond

// SDLGL is an SDL2 window with an OpenGL 2.1 context.
type SDLGL struct {
	set  *settings.Settings
	ip   interop.Interop
	recv userinput.Receiver

	// established by the probe in NewDisplay
	samples int
	stereo  bool

	cap *capture.Capture

	// the following fields belong to the display thread
	window *sdl.Window
	glctx  sdl.GLContext
	quad   uint32

	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

// NewDisplay is the preferred method of initialisation for the SDLGL type.
// Input events received by the window are forwarded to recv.
//
// A throwaway window is created and destroyed during initialisation. The
// shared render targets must match whatever multisampling and stereo support
// the driver will give the real window, and the only way to find out is to
// ask a real context.
func NewDisplay(set *settings.Settings, ip interop.Interop, recv userinput.Receiver) (*SDLGL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf(DisplayError, err)
	}

	scr := &SDLGL{
		set:  set,
		ip:   ip,
		recv: recv,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	if err := scr.probe(); err != nil {
		sdl.Quit()
		return nil, err
	}

	return scr, nil
}

// probe creates a hidden window to discover what the driver will actually
// give us.
func (scr *SDLGL) probe() error {
	window, glctx, err := createGLWindow("probe", 64, 64, sdl.WINDOW_HIDDEN, true, 0)
	if err != nil {
		// no quad buffered stereo. settle for a plain context
		window, glctx, err = createGLWindow("probe", 64, 64, sdl.WINDOW_HIDDEN, false, 0)
		if err != nil {
			return curated.Errorf(DisplayError, err)
		}
	}
	defer func() {
		sdl.GLDeleteContext(glctx)
		_ = window.Destroy()
	}()

	if err := gl.Init(); err != nil {
		return curated.Errorf(DisplayError, err)
	}

	var samples int32
	gl.GetIntegerv(gl.SAMPLES, &samples)
	scr.samples = int(samples)

	gl.GetBooleanv(gl.STEREO, &scr.stereo)

	logger.Logf(logger.LevelInfo, "sdlgl", "probe: %dx multisampling, quad buffered stereo %v", scr.samples, scr.stereo)

	return nil
}

func createGLWindow(title string, w int32, h int32, flags uint32, stereo bool, samples int) (*sdl.Window, sdl.GLContext, error) {
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	if stereo {
		_ = sdl.GLSetAttribute(sdl.GL_STEREO, 1)
	} else {
		_ = sdl.GLSetAttribute(sdl.GL_STEREO, 0)
	}
	if samples > 1 {
		_ = sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		_ = sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, samples)
	} else {
		_ = sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
		_ = sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		w, h, sdl.WINDOW_OPENGL|flags)
	if err != nil {
		return nil, nil, err
	}

	glctx, err := window.GLCreateContext()
	if err != nil {
		_ = window.Destroy()
		return nil, nil, err
	}

	return window, glctx, nil
}

// Samples implements the capture.Display interface.
func (scr *SDLGL) Samples() int {
	return scr.samples
}

// Launch implements the capture.Display interface. Returns once the display
// thread is up and the pool is bound, or with the error that prevented it.
func (scr *SDLGL) Launch(cap *capture.Capture) error {
	scr.cap = cap

	created := make(chan error)

	go func() {
		// the GL context can never leave this thread
		runtime.LockOSThread()
		defer close(scr.done)

		if err := scr.create(); err != nil {
			created <- err
			return
		}
		created <- nil

		scr.service()
		scr.destroy()
	}()

	return <-created
}

// Destroy implements the display.Display interface.
func (scr *SDLGL) Destroy() {
	scr.quitOnce.Do(func() { close(scr.quit) })
	if scr.cap != nil {
		<-scr.done
	}
	sdl.Quit()
}

// create the real window and bind the pool. Display thread.
func (scr *SDLGL) create() error {
	desc := scr.cap.Pool().Slot(0).Surface.Description()

	// side by side fallback shows both eyes at full size
	w := desc.Width
	if !scr.stereo {
		w *= 2
	}

	// when matching the producer's multisampling the real window has to ask
	// for the producer's sample count. the shared targets were created with
	// it and the blit path needs the counts to agree
	samples := 0
	if scr.set.MatchOriginalMSAA.Get().(bool) {
		samples = desc.MSAA
	}

	var err error
	scr.window, scr.glctx, err = createGLWindow(version.ApplicationName,
		int32(w), int32(desc.Height), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE, scr.stereo, samples)
	if err != nil {
		return curated.Errorf(DisplayError, err)
	}

	if err := sdl.GLSetSwapInterval(1); err != nil {
		logger.Logf(logger.LevelInfo, "sdlgl", "no vsync: %v", err)
	}

	if err := gl.Init(); err != nil {
		return curated.Errorf(DisplayError, err)
	}

	logger.Logf(logger.LevelInfo, "sdlgl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.LevelInfo, "sdlgl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.LevelInfo, "sdlgl", "version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if pf, err := scr.window.GetPixelFormat(); err == nil {
		logger.Logf(logger.LevelInfo, "sdlgl", "pixel format: %s", sdl.GetPixelFormatName(uint(pf)))
	}

	var maxTexture int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTexture)
	logger.Logf(logger.LevelInfo, "sdlgl", "max texture size: %d", maxTexture)

	var samples int32
	gl.GetIntegerv(gl.SAMPLES, &samples)
	logger.Logf(logger.LevelInfo, "sdlgl", "samples: %d", samples)

	gl.Disable(gl.DEPTH_TEST)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	scr.buildQuad()

	if err := scr.ip.Open(); err != nil {
		return curated.Errorf(DisplayError, err)
	}

	if err := scr.cap.Pool().Bind(scr.ip, interop.AccessReadOnly); err != nil {
		_ = scr.ip.Close()
		return curated.Errorf(DisplayError, err)
	}

	return nil
}

// destroy the window. Display thread, after service has returned.
func (scr *SDLGL) destroy() {
	scr.cap.Pool().Destroy(scr.ip)
	if err := scr.ip.Close(); err != nil {
		logger.Logf(logger.LevelError, "sdlgl", "%v", err)
	}

	gl.DeleteLists(scr.quad, 1)
	sdl.GLDeleteContext(scr.glctx)
	if err := scr.window.Destroy(); err != nil {
		logger.Logf(logger.LevelError, "sdlgl", "%v", err)
	}
}

// service runs until Destroy is called. Composes announced frames and keeps
// the SDL event queue drained.
func (scr *SDLGL) service() {
	for {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			scr.serviceEvent(ev)
		}

		select {
		case <-scr.quit:
			return
		case <-scr.cap.Handshake().Frame():
			scr.cap.Compose(scr)
		case <-time.After(pollPeriod):
		}
	}
}

func (scr *SDLGL) serviceEvent(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		scr.recv.ForwardInput(userinput.EventQuit{})

	case *sdl.KeyboardEvent:
		if ev.Repeat == 0 {
			scr.recv.ForwardInput(userinput.EventKeyboard{
				Key:  sdl.GetKeyName(ev.Keysym.Sym),
				Down: ev.Type == sdl.KEYDOWN,
			})
		}

	case *sdl.MouseMotionEvent:
		scr.recv.ForwardInput(userinput.EventMouseMotion{X: int(ev.X), Y: int(ev.Y)})

	case *sdl.MouseButtonEvent:
		var b userinput.MouseButton
		switch ev.Button {
		case sdl.BUTTON_LEFT:
			b = userinput.MouseButtonLeft
		case sdl.BUTTON_MIDDLE:
			b = userinput.MouseButtonMiddle
		case sdl.BUTTON_RIGHT:
			b = userinput.MouseButtonRight
		default:
			return
		}
		scr.recv.ForwardInput(userinput.EventMouseButton{
			Button: b,
			Down:   ev.Type == sdl.MOUSEBUTTONDOWN,
			X:      int(ev.X),
			Y:      int(ev.Y),
		})

	case *sdl.MouseWheelEvent:
		scr.recv.ForwardInput(userinput.EventMouseWheel{Delta: int(ev.Y)})

	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_EXPOSED {
			scr.cap.Redraw(scr)
		}
	}
}
