// logger.go defines Logger, the optional per-stage JSON experiment trace
// collaborator, and ExperimentLogger, its concrete json.MarshalIndent-based
// implementation. No library in the retrieval pack implements this exact
// schema, so ExperimentLogger is built directly on encoding/json; the
// ambient operational logger (actor lifecycle, dropped frames) is the
// separate *log.Logger charmbracelet/log concern Pipeline already carries.

package sondar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Kelvin23-utd/sondar1/internal/config"
)

// Logger is the optional per-stage trace collaborator. Implementations
// must be safe to call from the processing actor on every frame; a nil
// Logger is never passed around — callers that don't want tracing use
// NopLogger.
type Logger interface {
	StartExperiment(name, dir string) error
	LogRaw(f RealFrame, idx uint64)
	LogComplex(f ComplexFrame, idx uint64, stage string)
	LogImage(img RangeDopplerImage, idx uint64, stage string)
	LogVelocity(raw, smoothed, correlation float64, idx uint64)
	Save() error
}

// NopLogger discards every call. It is the default Logger for a Session
// that was not configured with experiment tracing.
type NopLogger struct{}

func (NopLogger) StartExperiment(string, string) error                { return nil }
func (NopLogger) LogRaw(RealFrame, uint64)                            {}
func (NopLogger) LogComplex(ComplexFrame, uint64, string)             {}
func (NopLogger) LogImage(RangeDopplerImage, uint64, string)          {}
func (NopLogger) LogVelocity(float64, float64, float64, uint64)       {}
func (NopLogger) Save() error                                        { return nil }

// ringCapacity bounds the in-memory sample trace to the 10 most recently
// created sample records; logging to an index that already has a record
// does not refresh its position.
const ringCapacity = 10

// ExperimentLogger accumulates a per-frame JSON trace in memory and writes
// it as a single document on Save. It retains at most ringCapacity
// samples, evicting the oldest touched index first.
type ExperimentLogger struct {
	cfg config.ChirpConfig

	mu        sync.Mutex
	name      string
	dir       string
	startTime time.Time

	order   []uint64
	samples map[uint64]map[string]any
}

// NewExperimentLogger returns an ExperimentLogger that derives chirp
// metadata (band, duration, sample rate) from cfg.
func NewExperimentLogger(cfg config.ChirpConfig) *ExperimentLogger {
	return &ExperimentLogger{
		cfg:     cfg,
		samples: make(map[uint64]map[string]any),
	}
}

// StartExperiment implements Logger.
func (l *ExperimentLogger) StartExperiment(name, dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.name = name
	l.dir = dir
	l.startTime = time.Now()
	l.order = nil
	l.samples = make(map[uint64]map[string]any)
	return nil
}

// sample returns the in-progress record for idx, creating it (and evicting
// the oldest record if the ring is full) if this is the first touch.
func (l *ExperimentLogger) sample(idx uint64) map[string]any {
	if s, ok := l.samples[idx]; ok {
		return s
	}
	if len(l.order) >= ringCapacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.samples, oldest)
	}
	s := map[string]any{"sampleIndex": idx}
	l.samples[idx] = s
	l.order = append(l.order, idx)
	return s
}

// LogRaw implements Logger.
func (l *ExperimentLogger) LogRaw(f RealFrame, idx uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sample(idx)["rawSignal"] = append([]int16(nil), f...)
}

// complexPoint is the JSON shape one Complex sample takes in a trace.
type complexPoint struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// stats summarizes a sample for the "<stage>_stats" field.
type stats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
}

// LogComplex implements Logger.
func (l *ExperimentLogger) LogComplex(f ComplexFrame, idx uint64, stage string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	points := make([]complexPoint, len(f))
	var sum, min, max float64
	for i, c := range f {
		m := c.Magnitude()
		points[i] = complexPoint{Re: c.Re, Im: c.Im}
		sum += m
		if i == 0 || m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	mean := 0.0
	if len(f) > 0 {
		mean = sum / float64(len(f))
	}

	rec := l.sample(idx)
	rec[stage] = points
	rec[stage+"_stats"] = stats{Min: min, Max: max, Mean: mean, Rows: 1, Cols: len(f)}
}

// LogImage implements Logger.
func (l *ExperimentLogger) LogImage(img RangeDopplerImage, idx uint64, stage string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum float64
	var min, max float32
	count := 0
	for r, row := range img {
		for c, v := range row {
			if r == 0 && c == 0 {
				min, max = v, v
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += float64(v)
			count++
		}
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}

	rec := l.sample(idx)
	rec[stage+"_image"] = img
	rec[stage+"_stats"] = stats{Min: float64(min), Max: float64(max), Mean: mean, Rows: img.Rows(), Cols: img.Cols()}
}

// velocityData is the JSON shape of the "velocityData" field.
type velocityData struct {
	RawVelocity       float64 `json:"rawVelocity"`
	SmoothedVelocity  float64 `json:"smoothedVelocity"`
	CorrelationScore  float64 `json:"correlationScore"`
}

// LogVelocity implements Logger.
func (l *ExperimentLogger) LogVelocity(raw, smoothed, correlation float64, idx uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sample(idx)["velocityData"] = velocityData{
		RawVelocity:      raw,
		SmoothedVelocity: smoothed,
		CorrelationScore: correlation,
	}
}

// experimentMetadata is the JSON shape of the document's "metadata" field.
type experimentMetadata struct {
	Name          string  `json:"name"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	ExperimentID  string  `json:"experimentId"`
	ChirpMinFreq  float64 `json:"chirpMinFreq"`
	ChirpMaxFreq  float64 `json:"chirpMaxFreq"`
	ChirpDuration float64 `json:"chirpDuration"`
	SampleRate    int     `json:"sampleRate"`
}

// experimentDocument is the single JSON document Save writes.
type experimentDocument struct {
	Metadata experimentMetadata `json:"metadata"`
	Samples  []map[string]any   `json:"samples"`
}

// Save implements Logger: it writes the accumulated trace as a single JSON
// document to <dir>/<name>.json.
func (l *ExperimentLogger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := experimentDocument{
		Metadata: experimentMetadata{
			Name:          l.name,
			StartTime:     l.startTime.Format(time.RFC3339),
			EndTime:       time.Now().Format(time.RFC3339),
			ExperimentID:  fmt.Sprintf("%s-%d", l.name, l.startTime.UnixNano()),
			ChirpMinFreq:  l.cfg.FLoHz,
			ChirpMaxFreq:  l.cfg.FHiHz,
			ChirpDuration: l.cfg.ChirpMs,
			SampleRate:    l.cfg.SampleRateHz,
		},
	}
	for _, idx := range l.order {
		doc.Samples = append(doc.Samples, l.samples[idx])
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("sondar: creating experiment dir %s: %w", l.dir, err)
	}

	path := filepath.Join(l.dir, l.name+".json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("sondar: marshaling experiment trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sondar: writing experiment trace to %s: %w", path, err)
	}
	return nil
}
