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

package capture

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/quadrastereo/quadra/curated"
	"github.com/quadrastereo/quadra/frame/device"
	"github.com/quadrastereo/quadra/frame/handshake"
	"github.com/quadrastereo/quadra/frame/pool"
	"github.com/quadrastereo/quadra/logger"
	"github.com/quadrastereo/quadra/settings"
)

// Error patterns for the capture package.
const (
	ResourceError = "capture: resources: %v"
)

// the stereo signal is a viewport no application would ever set deliberately.
// the Y field is not part of the signal and can carry anything
const (
	signalX      = 1
	signalWidth  = 2
	signalHeight = 3
)

// Display is the consumer side of the capture protocol, from the protocol's
// point of view. The concrete display lives in the display package.
type Display interface {
	// Samples is the sample count the driver has imposed on the display's
	// own framebuffer. some drivers force multisampling on every GL context
	// and shared render targets must be created to match
	Samples() int

	// Launch the display thread. the display binds the pool and services
	// frame announcements from its own thread until Destroy
	Launch(*Capture) error
}

// Capture implements the frame capture protocol for one producer device.
type Capture struct {
	dev  device.Device
	set  *settings.Settings
	disp Display

	pool *pool.Pool
	hs   *handshake.Handshake

	// render targets that have been observed at presentation time. only a
	// target the producer actually presents is worth capturing. producer
	// thread only
	presented map[device.SurfaceID]bool

	// the producer's own display target, cached when resources are created.
	// producer thread only
	backBuffer device.Surface

	initialised bool
	capturing   bool

	// the slot the producer draws into and the slot the display reads from.
	// each index is confined to its own thread
	drawIndex int
	readIndex int

	// the draws of the most recent display pass, kept for repaints. display
	// thread only
	lastPass []drawOp

	// stereo mode is one-way. once the signal has been seen the producer is
	// trusted to deliver left/right pairs until it exits
	stereoMode bool
	stereoTime time.Time

	startTime time.Time

	// statistics. producer and display threads both contribute
	framesIn  int64
	framesOut int64
	timeouts  int64
	lockFails int64

	// called when the producer's drawing can no longer be redirected. the
	// host application would render garbage if allowed to continue
	fatal func(error)
}

// NewCapture is the preferred method of initialisation for the Capture type.
func NewCapture(dev device.Device, set *settings.Settings, disp Display) *Capture {
	cap := &Capture{
		dev:       dev,
		set:       set,
		disp:      disp,
		pool:      pool.NewPool(),
		hs:        handshake.NewHandshake(),
		presented: make(map[device.SurfaceID]bool),
	}

	cap.fatal = func(err error) {
		logger.Logf(logger.LevelError, "capture", "fatal: %v", err)
		os.Exit(1)
	}

	return cap
}

// Pool returns the shared render target ring. Used by the display when
// binding and compositing.
func (cap *Capture) Pool() *pool.Pool {
	return cap.pool
}

// Handshake returns the synchronisation primitive shared with the display
// thread.
func (cap *Capture) Handshake() *handshake.Handshake {
	return cap.hs
}

// Initialised returns true once resources have been created and the display
// launched.
func (cap *Capture) Initialised() bool {
	return cap.initialised
}

// Stereo returns true once the stereo signal has been seen.
func (cap *Capture) Stereo() bool {
	return cap.stereoMode
}

// Frames returns how many frames the producer has delivered and how many the
// display has consumed. Safe to call from any thread.
func (cap *Capture) Frames() (in int64, out int64) {
	return atomic.LoadInt64(&cap.framesIn), atomic.LoadInt64(&cap.framesOut)
}

// OnClear is called at the start of the producer's frame, before it clears
// its render target.
func (cap *Capture) OnClear() {
	rt, err := cap.dev.RenderTarget()
	if err != nil {
		logger.Logf(logger.LevelError, "capture", "render target: %v", err)
		return
	}

	// only capture drawing that is headed for the display. intermediate
	// targets (shadow maps, video frames) clear too
	if !cap.presented[rt.ID()] {
		return
	}

	if !cap.initialised {
		if err := cap.createResources(rt); err != nil {
			logger.Logf(logger.LevelError, "capture", "%v", err)
			return
		}
	}

	cap.beginCapture()
}

// OnSetViewport is called for every viewport change the producer makes. The
// return value says whether the change should be forwarded to the device. A
// viewport carrying the stereo signal is consumed by the protocol.
func (cap *Capture) OnSetViewport(vp device.Viewport) bool {
	if vp.X != signalX || vp.Width != signalWidth || vp.Height != signalHeight {
		return true
	}

	if !cap.stereoMode {
		cap.stereoMode = true
		cap.stereoTime = time.Now()
		logger.Log(logger.LevelInfo, "capture", "stereo signal received")
	}

	// the signal arrives mid frame, between the two eyes. what has been
	// drawn so far is the left eye. the right eye goes into the next slot
	if cap.capturing {
		cap.endCapture(pool.LabelLeft)
		cap.beginCapture()
	}

	return false
}

// OnPrePresent is called when the producer is about to present its frame.
func (cap *Capture) OnPrePresent() {
	// the capture must end before the presented target is recorded.
	// endCapture hands the producer its own target back and it is that
	// target, not the pool slot, that is being presented
	if cap.capturing {
		if cap.stereoMode {
			cap.endCapture(pool.LabelRight)
		} else {
			cap.endCapture(pool.LabelMono)
		}
		cap.hs.NotifyFrame()
	}

	if rt, err := cap.dev.RenderTarget(); err == nil {
		cap.presented[rt.ID()] = true
	}
}

// OnPostPresent is called when the producer's presentation has completed.
// Blocks until the display has consumed the frame, but never for longer than
// the handshake timeout.
func (cap *Capture) OnPostPresent() {
	if !cap.initialised {
		return
	}

	if !cap.hs.WaitDone(handshake.DoneTimeout) {
		atomic.AddInt64(&cap.timeouts, 1)
		logger.Log(logger.LevelError, "capture", "display thread did not consume frame in time")
	}
}

// createResources builds the render target pool and launches the display.
// Runs at most once, on first sight of a cleared target that has previously
// been presented.
func (cap *Capture) createResources(rt device.Surface) error {
	desc := rt.Description()
	if desc.Width <= 0 || desc.Height <= 0 {
		// the target could not be queried. fall back on the adapter mode
		var err error
		desc, err = cap.dev.DisplayMode()
		if err != nil {
			return curated.Errorf(ResourceError, err)
		}
	}

	// when the driver forces multisampling on the display's framebuffer the
	// shared targets must match it or the blit path will fail
	if cap.set.MatchOriginalMSAA.Get().(bool) {
		logger.Logf(logger.LevelInfo, "capture", "matching producer multisampling (%dx)", desc.MSAA)
	} else {
		desc.MSAA = cap.disp.Samples()
		if desc.MSAA > 1 {
			logger.Logf(logger.LevelInfo, "capture", "driver forces %dx multisampling", desc.MSAA)
		}
	}

	if err := cap.pool.Create(cap.dev, desc); err != nil {
		return curated.Errorf(ResourceError, err)
	}

	cap.backBuffer = rt

	if err := cap.disp.Launch(cap); err != nil {
		cap.pool.Destroy(nil)
		return curated.Errorf(ResourceError, err)
	}

	cap.startTime = time.Now()
	cap.initialised = true
	logger.Logf(logger.LevelInfo, "capture", "capturing %v", desc)

	return nil
}

// beginCapture redirects the producer's drawing into the current draw slot.
func (cap *Capture) beginCapture() {
	if !cap.pool.Created() {
		return
	}

	// redirection resets the viewport as a side effect. save the producer's
	// viewport and put it back afterwards, or the producer will quietly
	// render at the wrong scale
	vp, err := cap.dev.Viewport()
	if err != nil {
		logger.Logf(logger.LevelError, "capture", "viewport: %v", err)
		return
	}

	if err := cap.dev.SetRenderTarget(cap.pool.Slot(cap.drawIndex).Surface); err != nil {
		cap.fatal(curated.Errorf("render target redirection failed: %v", err))
		return
	}

	if err := cap.dev.SetViewport(vp); err != nil {
		logger.Logf(logger.LevelError, "capture", "viewport restore: %v", err)
	}

	cap.capturing = true
}

// endCapture tags the frame in the current draw slot, advances to the next
// slot and returns the producer to its own render target.
func (cap *Capture) endCapture(l pool.Label) {
	if !cap.capturing {
		return
	}

	cap.pool.Slot(cap.drawIndex).SetLabel(l)
	cap.drawIndex = (cap.drawIndex + 1) % pool.NumSlots
	atomic.AddInt64(&cap.framesIn, 1)
	cap.capturing = false

	if cap.backBuffer == nil {
		return
	}

	// the producer's viewport is carried across the target switch, same as
	// in beginCapture
	vp, vperr := cap.dev.Viewport()

	if err := cap.dev.SetRenderTarget(cap.backBuffer); err != nil {
		logger.Logf(logger.LevelError, "capture", "render target restore: %v", err)
		return
	}

	if vperr == nil {
		if err := cap.dev.SetViewport(vp); err != nil {
			logger.Logf(logger.LevelError, "capture", "viewport restore: %v", err)
		}
	}
}

// Shutdown logs what the capture session amounted to. Called once the
// producer has finished. The ratio of display frames to producer frames is a
// quick health check. It settles at one hundred in mono and two hundred in
// stereo.
func (cap *Capture) Shutdown() {
	if !cap.initialised {
		logger.Log(logger.LevelInfo, "capture", "no frames were captured")
		return
	}

	cap.backBuffer = nil

	in := atomic.LoadInt64(&cap.framesIn)
	out := atomic.LoadInt64(&cap.framesOut)
	dur := time.Since(cap.startTime)

	logger.Logf(logger.LevelInfo, "capture", "%d presented targets seen", len(cap.presented))
	logger.Logf(logger.LevelInfo, "capture", "%d frames in, %d frames out over %v", in, out, dur.Round(time.Millisecond))
	if in > 0 {
		logger.Logf(logger.LevelInfo, "capture", "out/in ratio %d%%", out*100/in)
	}
	if sec := dur.Seconds(); sec > 0 {
		logger.Logf(logger.LevelInfo, "capture", "%.1f fps", float64(in)/sec)
	}
	if cap.stereoMode {
		logger.Logf(logger.LevelInfo, "capture", "stereo entered %v after capture began", cap.stereoTime.Sub(cap.startTime).Round(time.Millisecond))
	}
	if to := atomic.LoadInt64(&cap.timeouts); to > 0 {
		logger.Logf(logger.LevelInfo, "capture", "%d handshake timeouts", to)
	}
	if lf := atomic.LoadInt64(&cap.lockFails); lf > 0 {
		logger.Logf(logger.LevelInfo, "capture", "%d lock failures", lf)
	}
}
