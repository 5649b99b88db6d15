// Command play_midi opens a virtual MIDI input port and plays whatever is
// sent to it: a monophonic highest-note voice with an envelope-swept filter,
// wired off one translator channel.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"

	modsynth "github.com/cbegin/modsynth-go"
)

func main() {
	var (
		portName = flag.String("port", "modsynth", "name of the virtual MIDI input port")
		channel  = flag.Int("channel", 0, "MIDI channel to play (0-15)")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()
	initLogger(*debug)

	if *channel < 0 || *channel > 15 {
		slog.Error("channel out of range", "channel", *channel)
		os.Exit(1)
	}

	rack := modsynth.NewRack()

	midi := modsynth.NewMIDI(rack)
	vco := modsynth.NewVCO(rack, 0)
	vcf := modsynth.NewVCF(rack, 0, 3)
	vca := modsynth.NewVCA(rack, 2000)
	env := modsynth.NewEnvelope(rack, 0.1, 1, 0.1)
	speaker := modsynth.NewSpeaker(rack)

	ch := &midi.Channels[*channel]
	modsynth.NewWire(rack, &ch.Gate, &env.GateIn)
	modsynth.NewWire(rack, &ch.Frequency, &vco.Frequency)
	modsynth.NewWire(rack, &env.AmplitudeOut, &vca.AudioIn)
	modsynth.NewWire(rack, &vca.AudioOut, &vcf.Cutoff)
	modsynth.NewWire(rack, &vco.SawtoothOut, &vcf.AudioIn)
	modsynth.NewWire(rack, &vcf.LowpassOut, &speaker.LeftIn)
	modsynth.NewWire(rack, &vcf.LowpassOut, &speaker.RightIn)

	if err := midi.OpenVirtualPort(*portName); err != nil {
		slog.Error("midi open", "err", err)
		os.Exit(1)
	}
	defer midi.Close()

	if err := rack.Start(); err != nil {
		slog.Error("audio start", "err", err)
		os.Exit(1)
	}
	slog.Info("listening", "port", *portName, "channel", *channel)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig

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
