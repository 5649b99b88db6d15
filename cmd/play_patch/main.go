// Command play_patch plays a demo patch: a slow clock drives a step
// sequencer, which in turn drives an oscillator through an envelope-swept
// filter. With -wav it renders the patch offline instead of playing it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	modsynth "github.com/cbegin/modsynth-go"
)

func main() {
	var (
		wavPath = flag.String("wav", "", "render offline to a WAV file instead of playing")
		seconds = flag.Float64("seconds", 8, "offline render length in seconds")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	initLogger(*debug)

	rack := modsynth.NewRack()

	clock := modsynth.NewVCO(rack, 1)
	seq, err := modsynth.NewSequencer(rack, "C2", "D2", "Bb1", "F1")
	if err != nil {
		slog.Error("sequencer", "err", err)
		os.Exit(1)
	}
	vco := modsynth.NewVCO(rack, 0)
	vcf := modsynth.NewVCF(rack, 0, 3)
	vca := modsynth.NewVCA(rack, 2000)
	env := modsynth.NewEnvelope(rack, 0.1, 1, 0.1)
	speaker := modsynth.NewSpeaker(rack)

	modsynth.NewWire(rack, &clock.SquareOut, &seq.ClockIn)
	modsynth.NewWire(rack, &seq.GateOut, &env.GateIn)
	modsynth.NewWire(rack, &seq.FrequencyOut, &vco.Frequency)
	modsynth.NewWire(rack, &env.AmplitudeOut, &vca.AudioIn)
	modsynth.NewWire(rack, &vca.AudioOut, &vcf.Cutoff)
	modsynth.NewWire(rack, &vco.SawtoothOut, &vcf.AudioIn)
	modsynth.NewWire(rack, &vcf.LowpassOut, &speaker.LeftIn)
	modsynth.NewWire(rack, &vcf.LowpassOut, &speaker.RightIn)

	if *wavPath != "" {
		samples := modsynth.RenderSamples(rack, *seconds)
		data := modsynth.EncodeWAVFloat32LE(samples, modsynth.SampleRate, 2)
		if err := os.WriteFile(*wavPath, data, 0o644); err != nil {
			slog.Error("write wav", "path", *wavPath, "err", err)
			os.Exit(1)
		}
		slog.Info("rendered", "path", *wavPath, "seconds", *seconds)
		return
	}

	if err := rack.Start(); err != nil {
		slog.Error("audio start", "err", err)
		os.Exit(1)
	}
	fmt.Println("Press enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	rack.Stop()
	if err := rack.Close(); err != nil {
		slog.Warn("audio close", "err", err)
	}
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
