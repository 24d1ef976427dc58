// pipeline.go implements Pipeline, the per-frame sequential orchestrator:
// preprocess -> align -> dechirp -> STFT -> subtract background ->
// range-Doppler -> compensate phase -> publish. Grounded on
// thesyncim-gopus's Decoder.Decode shape (one struct owning all
// sub-decoder state, one method sequencing sub-stages, a fallback on
// failure that preserves decoder state for the next call) generalized
// from decoding one Opus packet to processing one captured frame.

package sondar

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/Kelvin23-utd/sondar1/internal/align"
	"github.com/Kelvin23-utd/sondar1/internal/background"
	"github.com/Kelvin23-utd/sondar1/internal/bandpass"
	"github.com/Kelvin23-utd/sondar1/internal/chirp"
	"github.com/Kelvin23-utd/sondar1/internal/complexnum"
	"github.com/Kelvin23-utd/sondar1/internal/config"
	"github.com/Kelvin23-utd/sondar1/internal/doppler"
	"github.com/Kelvin23-utd/sondar1/internal/downconvert"
	"github.com/Kelvin23-utd/sondar1/internal/frame"
	"github.com/Kelvin23-utd/sondar1/internal/phase"
	"github.com/Kelvin23-utd/sondar1/internal/physical"
)

// distanceHistoryCap bounds the rolling distance history MotionTheta
// estimates the synthetic-aperture angle from. The spec only requires at
// least 3 samples; this caps memory for a long-running session the same
// way the Doppler EMA state stays O(1) rather than replaying every past
// estimate.
const distanceHistoryCap = 30

// Pipeline owns every piece of state a session's DSP stages carry across
// frames: the chirp templates, the bandpass kernel, the Doppler search
// state, and the running background estimate. It is not safe for
// concurrent use — exactly one goroutine (the processing actor) may call
// ProcessFrame at a time, matching gopus's single-Decoder-per-goroutine
// contract.
type Pipeline struct {
	cfg        config.ChirpConfig
	log        *log.Logger
	trace      Logger
	classifier ShapeClassifier

	templates chirp.Template
	fir       bandpass.Kernel
	search    *doppler.Search
	bg        *background.Subtractor

	frameIndex uint64

	lastTF       frame.TFImage
	lastRD       frame.RangeDopplerImage
	lastPhysical frame.PhysicalImage

	distances []float64
}

// NewPipeline builds a Pipeline from cfg, constructing the chirp templates
// and bandpass kernel once for the life of the session. logger may be nil,
// in which case pipeline events are discarded.
func NewPipeline(cfg config.ChirpConfig, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		cfg:        cfg,
		log:        logger,
		trace:      NopLogger{},
		classifier: NopClassifier{},
		templates:  chirp.New(cfg),
		fir:        bandpass.New(cfg),
		search:     doppler.New(cfg),
		bg:         background.New(cfg),
	}
}

// WithTrace attaches the experiment trace collaborator that ProcessFrame
// reports every stage to. It returns p for chaining; a nil trace resets
// reporting to NopLogger.
func (p *Pipeline) WithTrace(trace Logger) *Pipeline {
	if trace == nil {
		trace = NopLogger{}
	}
	p.trace = trace
	return p
}

// WithClassifier attaches the shape classifier ProcessFrame consults after
// mapping each frame to physical space. It returns p for chaining; a nil
// classifier resets classification to NopClassifier.
func (p *Pipeline) WithClassifier(classifier ShapeClassifier) *Pipeline {
	if classifier == nil {
		classifier = NopClassifier{}
	}
	p.classifier = classifier
	return p
}

// ProcessFrame runs one captured frame through every DSP stage in order
// and returns the published Result. A stage fault or an empty input drops
// the frame (returning the zero Result and false) without disturbing
// Pipeline's carried-over state, matching the StageFault/EmptyFrame
// semantics: the next frame proceeds from exactly the state this one left
// behind.
func (p *Pipeline) ProcessFrame(captured RealFrame) (Result, bool) {
	p.frameIndex++
	idx := p.frameIndex

	if len(captured) == 0 {
		p.log.Debug("dropping empty frame", "frame", idx)
		return Result{}, false
	}

	p.trace.LogRaw(captured, idx)

	complexFrame := captured.ToComplexFrame()

	preprocessed, err := p.preprocess(complexFrame)
	if err != nil {
		p.log.Warn("stage fault, dropping frame", "frame", idx, "err", newStageError("preprocess", err))
		return Result{}, false
	}
	p.trace.LogComplex(ComplexFrame(preprocessed), idx, "preprocessed")

	aligned, dopplerResult := align.Align(preprocessed, p.search, p.templates.Reference, p.cfg)
	p.trace.LogVelocity(dopplerResult.RawVelocity, dopplerResult.VelocityMps, dopplerResult.CorrelationScore, idx)

	baseband := downconvert.Dechirp(aligned, p.templates.Downchirp)

	tf, err := downconvert.STFT(baseband, p.cfg.STFTWindow, p.cfg.STFTHop)
	if err != nil {
		p.log.Warn("stage fault in STFT, dropping frame", "frame", idx, "err", newStageError("stft", err))
		return Result{}, false
	}
	if tf.Rows() == 0 {
		p.log.Debug("frame too short for a single STFT window", "frame", idx)
		return Result{}, false
	}

	foreground := p.bg.Subtract(tf)
	p.lastTF = foreground

	rd, err := downconvert.RangeDoppler(foreground)
	if err != nil {
		p.log.Warn("stage fault in range-Doppler FFT, dropping frame", "frame", idx, "err", newStageError("range-doppler", err))
		return Result{}, false
	}
	p.lastRD = rd
	p.trace.LogImage(rd, idx, "rangeDoppler")

	compensated := phase.Compensate(rd, dopplerResult.VelocityMps, p.cfg.SoundSpeedMps)
	p.trace.LogImage(compensated, idx, "compensated")

	peak, peakRow, _ := compensated.Max()
	p.distances = append(p.distances, float64(peakRow)*physical.RangeResolutionMm(p.cfg))
	if len(p.distances) > distanceHistoryCap {
		p.distances = p.distances[len(p.distances)-distanceHistoryCap:]
	}
	theta := physical.MotionTheta(p.distances, p.cfg)

	physicalImage := physical.Map(compensated, theta, p.cfg)
	p.lastPhysical = physicalImage
	lengthMm, widthMm := physical.ExtractSize(physicalImage, p.cfg)

	threshold := float32(p.cfg.SizeThresholdFrac) * peak
	shape := p.classifier.Classify(physicalImage, threshold)

	result := Result{
		CompensatedImage: compensated,
		VelocityMps:      dopplerResult.VelocityMps,
		FrameIndex:       idx,
		Physical:         physicalImage,
		LengthMm:         lengthMm,
		WidthMm:          widthMm,
		Shape:            shape,
	}
	return result, true
}

// preprocess applies the bandpass kernel to a captured frame once. (One
// documented variant of this pipeline applies its bandpass stage twice in
// this position; a single application is the numerically correct
// behaviour and is used here.)
func (p *Pipeline) preprocess(input []complexnum.Complex) ([]complexnum.Complex, error) {
	if len(input) == 0 {
		return input, ErrEmptyFrame
	}
	return p.fir.Apply(input), nil
}

// LastForeground returns the most recent foreground TFImage this Pipeline
// produced, the session's "last" snapshot referenced by spec.
func (p *Pipeline) LastForeground() frame.TFImage {
	return p.lastTF
}

// LastRangeDoppler returns the most recent (pre-compensation) range-Doppler
// image this Pipeline produced.
func (p *Pipeline) LastRangeDoppler() frame.RangeDopplerImage {
	return p.lastRD
}

// LastPhysicalImage returns the most recent PhysicalImage this Pipeline
// mapped the compensated range-Doppler image into.
func (p *Pipeline) LastPhysicalImage() frame.PhysicalImage {
	return p.lastPhysical
}
