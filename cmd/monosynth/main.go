// Command monosynth runs the monophonic oscillator engine against the
// system audio output, driven by live MIDI input or a built-in demo
// sequence.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wavecraft/monosynth/pkg/midi"
	"github.com/wavecraft/monosynth/pkg/synth"
)

var cfg struct {
	SampleRate int
	GainDb     float64
	Frequency  float64
	Demo       bool
	LogLevel   string
	ListInputs bool
}

func init() {
	flag.IntVar(&cfg.SampleRate, "sample-rate", 44100, "output sample rate in Hz")
	flag.Float64Var(&cfg.GainDb, "gain", synth.DefaultGainDb, "master gain in dB")
	flag.Float64Var(&cfg.Frequency, "freq", synth.DefaultFrequency, "idle pitch in Hz, sounds until the first note")
	flag.BoolVar(&cfg.Demo, "demo", false, "play the demo sequence instead of listening for MIDI")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "minimum level of messages to log to console")
	flag.BoolVar(&cfg.ListInputs, "list-inputs", false, "list MIDI input ports and exit")
}

func main() {
	log.Logger = zerolog.New(
		zerolog.ConsoleWriter{
			Out: os.Stderr,
		},
	).With().Timestamp().Logger()

	flag.Parse()

	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	if cfg.ListInputs {
		if err := listInputs(); err != nil {
			log.Fatal().Err(err).Msg("listing MIDI inputs failed")
		}
		return
	}

	proc := synth.New()
	if err := proc.Initialize(float64(cfg.SampleRate), blockSize); err != nil {
		log.Fatal().Err(err).Msg("engine initialization failed")
	}
	params := proc.Parameters()
	params.Get(synth.ParamGain).SetPlainValue(cfg.GainDb)
	params.Get(synth.ParamFrequency).SetPlainValue(cfg.Frequency)

	queue := midi.NewEventQueue()
	player, err := NewPlayer(proc, queue, cfg.SampleRate)
	if err != nil {
		log.Fatal().Err(err).Msg("audio output failed")
	}
	defer player.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		log.Info().Stringer("signal", sig).Msg("shutting down")
		cancel()
	}()

	log.Info().
		Int("sample_rate", cfg.SampleRate).
		Float64("gain_db", cfg.GainDb).
		Float64("idle_freq", cfg.Frequency).
		Msg("monosynth running")

	player.Start()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Demo {
		g.Go(func() error {
			return demoSequence(ctx, queue, float64(cfg.SampleRate))
		})
	} else {
		g.Go(func() error {
			return listenMIDI(ctx, queue)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("runtime error")
	}
}
