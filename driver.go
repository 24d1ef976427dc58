// driver.go defines AudioIO, the capability interface a Session uses to
// capture and emit audio, plus PortAudioDriver (a real-time portaudio
// implementation) and SyntheticDriver (an in-memory implementation for
// headless tests). Grounded on portaudio's OpenDefaultStream/Start/Stop
// callback shape as used for mono duplex i16 streams, generalized from a
// stereo synthesis/analysis callback to a single-channel capture/emit pair.

package sondar

import (
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/Kelvin23-utd/sondar1/internal/config"
)

// AudioIO is the capture/playback driver a Session is built on. Samples
// are signed-16 PCM at cfg.SampleRateHz mono; the capture buffer size is
// cfg.CaptureBufferSamples().
type AudioIO interface {
	// StartCapture begins delivering captured frames to onFrame, once per
	// buffer, until StopCapture is called. onFrame must not retain the
	// slice it is given — the driver may reuse it on the next callback.
	StartCapture(onFrame func(RealFrame)) error

	// StopCapture halts capture callbacks. It is safe to call more than
	// once.
	StopCapture() error

	// Emit writes samples to the audio output.
	Emit(samples RealFrame) error

	// Release frees any driver resources. It implies StopCapture.
	Release() error
}

// PortAudioDriver is the concrete AudioIO backed by a real-time portaudio
// duplex stream.
type PortAudioDriver struct {
	cfg    config.ChirpConfig
	stream *portaudio.Stream

	mu      sync.Mutex
	onFrame func(RealFrame)
	pending RealFrame
}

// NewPortAudioDriver initializes the portaudio library and opens the
// default mono duplex stream at cfg.SampleRateHz, with a callback buffer
// sized to cfg.CaptureBufferSamples().
func NewPortAudioDriver(cfg config.ChirpConfig) (*PortAudioDriver, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	d := &PortAudioDriver{cfg: cfg}
	stream, err := portaudio.OpenDefaultStream(1, 1, float64(cfg.SampleRateHz), cfg.CaptureBufferSamples(), d.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	d.stream = stream
	return d, nil
}

// callback is portaudio's per-buffer duplex handler: it hands the input
// buffer to the registered onFrame (copying first, since in is reused by
// portaudio on the next callback), and drains whatever Emit most recently
// queued into out, zero-filling anything Emit didn't cover. The emission
// actor calls Emit on its own timer (emission.go); this callback only
// drains what it queued, keeping the two actors' rendezvous lock-free
// except for this single pending-buffer handoff.
func (d *PortAudioDriver) callback(in, out []int16) {
	d.mu.Lock()
	onFrame := d.onFrame
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	if onFrame != nil {
		onFrame(frameFromInt16(in))
	}

	n := copy(out, pending)
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// StartCapture implements AudioIO.
func (d *PortAudioDriver) StartCapture(onFrame func(RealFrame)) error {
	d.mu.Lock()
	d.onFrame = onFrame
	d.mu.Unlock()
	return d.stream.Start()
}

// StopCapture implements AudioIO.
func (d *PortAudioDriver) StopCapture() error {
	d.mu.Lock()
	d.onFrame = nil
	d.mu.Unlock()
	return d.stream.Stop()
}

// Emit implements AudioIO by queuing samples for the next duplex callback
// to play. It does not block for playback to complete.
func (d *PortAudioDriver) Emit(samples RealFrame) error {
	cp := make(RealFrame, len(samples))
	copy(cp, samples)

	d.mu.Lock()
	d.pending = cp
	d.mu.Unlock()
	return nil
}

// Release implements AudioIO.
func (d *PortAudioDriver) Release() error {
	_ = d.StopCapture()
	if err := d.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

func frameFromInt16(samples []int16) RealFrame {
	out := make(RealFrame, len(samples))
	copy(out, samples)
	return out
}

// SyntheticDriver is an in-memory AudioIO for headless tests: StartCapture
// delivers frames pushed via PushFrame rather than real hardware, and Emit
// records what was written rather than playing it.
type SyntheticDriver struct {
	mu       sync.Mutex
	onFrame  func(RealFrame)
	emitted  []RealFrame
	released bool
}

// NewSyntheticDriver returns a ready-to-use SyntheticDriver.
func NewSyntheticDriver() *SyntheticDriver {
	return &SyntheticDriver{}
}

// StartCapture implements AudioIO.
func (d *SyntheticDriver) StartCapture(onFrame func(RealFrame)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFrame = onFrame
	return nil
}

// StopCapture implements AudioIO.
func (d *SyntheticDriver) StopCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFrame = nil
	return nil
}

// PushFrame delivers frame to the registered capture callback, simulating
// one buffer's worth of hardware capture. It is a no-op if capture has not
// been started.
func (d *SyntheticDriver) PushFrame(f RealFrame) {
	d.mu.Lock()
	onFrame := d.onFrame
	d.mu.Unlock()
	if onFrame != nil {
		onFrame(f)
	}
}

// Emit implements AudioIO by recording samples for later inspection.
func (d *SyntheticDriver) Emit(samples RealFrame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make(RealFrame, len(samples))
	copy(cp, samples)
	d.emitted = append(d.emitted, cp)
	return nil
}

// Emitted returns every frame handed to Emit so far.
func (d *SyntheticDriver) Emitted() []RealFrame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]RealFrame(nil), d.emitted...)
}

// Release implements AudioIO.
func (d *SyntheticDriver) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
	d.onFrame = nil
	return nil
}
