// Command sondar runs one SONDAR sensing session against the default
// portaudio input/output device. Flag parsing follows the pflag idiom
// direwolf/cmd/direwolf uses (doismellburning-samoyed), generalized from
// its packet-radio option set to SONDAR's four session-level knobs.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Kelvin23-utd/sondar1"
	"github.com/Kelvin23-utd/sondar1/internal/config"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML session configuration file. Defaults to the built-in configuration.")
	logDir := pflag.StringP("log-dir", "l", "", "Directory to write the JSON experiment trace to. Empty disables tracing.")
	experimentName := pflag.StringP("experiment-name", "n", "session", "Name used for the experiment trace file and its ID.")
	listenSeconds := pflag.IntP("listen-seconds", "t", 0, "Stop automatically after this many seconds. 0 runs until interrupted.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "sondar - acoustic imaging sensor session runner.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sondar [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.InfoLevel)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal("loading configuration", "path", *configPath, "err", err)
		}
		cfg = loaded
	}

	driver, err := sondar.NewPortAudioDriver(cfg)
	if err != nil {
		logger.Fatal("opening audio device", "err", err)
	}

	var experimentLogger sondar.Logger = sondar.NopLogger{}
	if *logDir != "" {
		el := sondar.NewExperimentLogger(cfg)
		if err := el.StartExperiment(*experimentName, *logDir); err != nil {
			logger.Fatal("starting experiment trace", "err", err)
		}
		experimentLogger = el
		defer func() {
			if err := el.Save(); err != nil {
				logger.Error("saving experiment trace", "err", err)
			}
		}()
	}

	sink := sondar.ResultSinkFunc(func(r sondar.Result) {
		logger.Info("result", "frame", r.FrameIndex, "velocity_mps", r.VelocityMps,
			"length_mm", r.LengthMm, "width_mm", r.WidthMm, "shape", r.Shape)
	})

	session := sondar.NewSession(cfg, driver, sink, experimentLogger, logger)
	if err := session.Start(); err != nil {
		logger.Fatal("starting session", "err", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if *listenSeconds > 0 {
		select {
		case <-stop:
		case <-time.After(time.Duration(*listenSeconds) * time.Second):
		}
	} else {
		<-stop
	}

	logger.Info("stopping session")
	if err := session.Release(); err != nil {
		logger.Error("releasing session", "err", err)
	}
}
