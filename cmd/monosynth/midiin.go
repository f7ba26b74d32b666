package main

import (
	"context"
	"fmt"

	log "github.com/rs/zerolog/log"
	"gitlab.com/gomidi/rtmididrv"

	"github.com/wavecraft/monosynth/pkg/midi"
)

// Channel-voice status nibbles.
const (
	statusNoteOff      = 0x80
	statusNoteOn       = 0x90
	statusPolyPressure = 0xA0
)

// decodeMessage turns a raw channel-voice message into an engine event.
// A note-on with velocity 0 is a release, per convention. Messages other
// than note on/off and polyphonic pressure are ignored.
func decodeMessage(data []byte) (midi.Event, bool) {
	if len(data) < 3 {
		return nil, false
	}
	channel := data[0] & 0x0F
	note := data[1] & 0x7F
	value := data[2] & 0x7F
	base := midi.BaseEvent{EventChannel: channel}

	switch data[0] & 0xF0 {
	case statusNoteOn:
		if value == 0 {
			return midi.NoteOffEvent{BaseEvent: base, NoteNumber: note}, true
		}
		return midi.NoteOnEvent{BaseEvent: base, NoteNumber: note, Velocity: float64(value) / 127.0}, true
	case statusNoteOff:
		return midi.NoteOffEvent{BaseEvent: base, NoteNumber: note}, true
	case statusPolyPressure:
		return midi.PolyPressureEvent{BaseEvent: base, NoteNumber: note, Pressure: float64(value) / 127.0}, true
	}
	return nil, false
}

// listenMIDI opens the first available MIDI input and feeds decoded
// events into the queue until ctx is cancelled. Live events carry offset
// 0: they take effect at the start of the next rendered block.
func listenMIDI(ctx context.Context, queue *midi.EventQueue) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("initialize MIDI driver: %w", err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("list MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		log.Warn().Msg("no MIDI inputs found")
		<-ctx.Done()
		return nil
	}

	in := ins[0]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open MIDI input %q: %w", in.String(), err)
	}
	defer in.Close()
	log.Info().Str("input", in.String()).Msg("listening for MIDI")

	err = in.SetListener(func(data []byte, deltaMicroseconds int64) {
		event, ok := decodeMessage(data)
		if !ok {
			return
		}
		log.Debug().Stringer("event", event).Msg("midi in")
		queue.Add(event)
	})
	if err != nil {
		return fmt.Errorf("set MIDI listener: %w", err)
	}
	defer in.StopListening()

	<-ctx.Done()
	return nil
}

// listInputs prints the available MIDI input ports.
func listInputs() error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("initialize MIDI driver: %w", err)
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("list MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		fmt.Println("no MIDI inputs found")
		return nil
	}
	for i, in := range ins {
		fmt.Printf("%d: %s\n", i, in.String())
	}
	return nil
}
