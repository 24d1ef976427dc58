// Package sondar implements SONDAR, an acoustic imaging sensor built from a
// commodity device's speaker and microphone.
//
// SONDAR emits an inaudible linear FM chirp, captures the echoes returning
// from a nearby moving object, and reconstructs a two-dimensional
// reflectivity image from which the object's velocity, dimensions, and
// coarse shape are inferred.
//
// # Pipeline
//
// Each captured audio frame flows through a fixed sequence of stages:
//
//	preprocess (bandpass) → align (Doppler compensation + latency strip) →
//	dechirp → STFT → background subtraction → range-Doppler FFT →
//	phase compensation → physical-space mapping + size extraction →
//	shape classification → publish
//
// The stage implementations live under internal/ (complexnum, fft, chirp,
// bandpass, doppler, align, downconvert, background, phase, physical);
// Pipeline in pipeline.go sequences them against a single PipelineState
// owned by one processing goroutine per Session.
//
// # Actors
//
// A Session runs three independent goroutines: a capture loop that copies
// delivered audio frames onto a bounded channel and never blocks on
// processing, a processing loop that runs the Pipeline serially and drops
// frames under back-pressure, and an emission loop that writes the
// pre-generated chirp to the audio output on a fixed timer.
//
// # External collaborators
//
// The audio driver, shape classifier, result sink, and experiment logger
// are all injected through small interfaces (AudioIO, ShapeClassifier,
// ResultSink, Logger) so the pipeline can be exercised headlessly with
// synthetic frames.
package sondar
