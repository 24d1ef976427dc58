// session.go implements Session: the lifecycle glue that owns a Pipeline
// and wires the three concurrent actors (capture, processing, emission)
// together over the AudioIO, ResultSink, and Logger collaborators. Stop is
// idempotent (sync.Once) and signals shutdown via context cancellation
// with the grace periods the concurrency model requires.

package sondar

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Kelvin23-utd/sondar1/internal/chirp"
	"github.com/Kelvin23-utd/sondar1/internal/config"
)

// emissionGracePeriod and processingGracePeriod bound how long Stop waits
// for the emission and processing actors to drain before moving on,
// matching the ≤500ms / ≤1s grace periods in the concurrency model.
const (
	emissionGracePeriod   = 500 * time.Millisecond
	processingGracePeriod = time.Second
)

// Session owns one running instance of the sensor: its Pipeline, the
// audio driver, and the three actor goroutines that connect them. Start
// initializes everything; Stop (idempotent) tears it down.
type Session struct {
	cfg       config.ChirpConfig
	driver    AudioIO
	sink      ResultSink
	logger    Logger
	pipeline  *Pipeline
	templates chirp.Template
	runtime   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	frames         chan RealFrame
	processingDone chan struct{}
	emissionDone   chan struct{}

	stopOnce sync.Once
	started  bool
}

// NewSession constructs a Session. sink receives one Result per
// successfully processed frame; logger may be NopLogger{} if experiment
// tracing is not wanted; runtimeLogger may be nil (operational logging is
// then discarded).
func NewSession(cfg config.ChirpConfig, driver AudioIO, sink ResultSink, logger Logger, runtimeLogger *log.Logger) *Session {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Session{
		cfg:       cfg,
		driver:    driver,
		sink:      sink,
		logger:    logger,
		pipeline:  NewPipeline(cfg, runtimeLogger).WithTrace(logger),
		templates: chirp.New(cfg),
		runtime:   runtimeLogger,
	}
}

// WithClassifier attaches the shape classifier the session's Pipeline
// consults for every processed frame. It returns s for chaining; a nil
// classifier resets classification to NopClassifier. Must be called before
// Start.
func (s *Session) WithClassifier(classifier ShapeClassifier) *Session {
	s.pipeline.WithClassifier(classifier)
	return s
}

// Start launches the capture, processing, and emission actors. It is an
// error to call Start more than once on a Session.
func (s *Session) Start() error {
	if s.started {
		return ErrInvalidConfig
	}
	s.started = true

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.frames = make(chan RealFrame, captureQueueDepth)
	s.processingDone = make(chan struct{})
	s.emissionDone = make(chan struct{})

	onFrame := startCapture(s.frames, func() {
		s.logf("dropping captured frame: processing executor saturated")
	})
	if err := s.driver.StartCapture(onFrame); err != nil {
		s.cancel()
		return err
	}

	go s.runProcessingLoop()
	go runEmissionLoop(s.ctx, s.driver, s.templates.Emission, time.Duration(s.cfg.EmitPeriodMs*float64(time.Millisecond)), func(err error) {
		s.logf("emission error: %v", err)
	}, s.emissionDone)

	return nil
}

// runProcessingLoop is the single-threaded serial executor: it drains
// s.frames in arrival order, running Pipeline.ProcessFrame on each and
// publishing successful results to s.sink, until s.ctx is canceled.
func (s *Session) runProcessingLoop() {
	defer close(s.processingDone)

	for {
		select {
		case <-s.ctx.Done():
			return
		case f, ok := <-s.frames:
			if !ok {
				return
			}
			result, published := s.pipeline.ProcessFrame(f)
			if published {
				s.sink.PublishResult(result)
			}
		}
	}
}

// Stop halts capture and emission, waits (with bounded grace periods) for
// the processing and emission actors to drain, and is safe to call more
// than once.
func (s *Session) Stop() error {
	var stopErr error
	s.stopOnce.Do(func() {
		if !s.started {
			return
		}
		if err := s.driver.StopCapture(); err != nil {
			stopErr = err
		}
		s.cancel()

		waitFor(s.emissionDone, emissionGracePeriod)
		waitFor(s.processingDone, processingGracePeriod)
	})
	return stopErr
}

// Release stops the session (if not already stopped) and releases the
// audio driver.
func (s *Session) Release() error {
	if err := s.Stop(); err != nil {
		return err
	}
	return s.driver.Release()
}

func waitFor(done <-chan struct{}, grace time.Duration) {
	select {
	case <-done:
	case <-time.After(grace):
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.runtime != nil {
		s.runtime.Warnf(format, args...)
	}
}
