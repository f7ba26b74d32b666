package main

import (
	"context"
	"time"

	log "github.com/rs/zerolog/log"

	"github.com/wavecraft/monosynth/pkg/midi"
)

// demoSequence schedules a looping arpeggio into the queue, one bar at a
// time, with sample offsets spread across the bar. Scheduling ahead
// exercises the same path a sequencer would: the queue carries future
// events across blocks until their due sample arrives.
func demoSequence(ctx context.Context, queue *midi.EventQueue, sampleRate float64) error {
	notes := []uint8{69, 72, 76, 72} // A4 C5 E5 C5
	stepSamples := int32(sampleRate * 0.3)
	gateSamples := int32(sampleRate * 0.25)
	barSamples := stepSamples * int32(len(notes))

	log.Info().Msg("no MIDI input in use, playing demo sequence")

	ticker := time.NewTicker(time.Duration(float64(barSamples) / sampleRate * float64(time.Second)))
	defer ticker.Stop()

	for {
		events := make([]midi.Event, 0, 2*len(notes))
		for i, note := range notes {
			on := int32(i) * stepSamples
			events = append(events,
				midi.NoteOnEvent{
					BaseEvent:  midi.BaseEvent{Offset: on},
					NoteNumber: note,
					Velocity:   0.9,
				},
				midi.NoteOffEvent{
					BaseEvent:  midi.BaseEvent{Offset: on + gateSamples},
					NoteNumber: note,
				},
			)
		}
		queue.AddMultiple(events...)
		log.Debug().Int("events", len(events)).Msg("scheduled demo bar")

		select {
		case <-ctx.Done():
			queue.Clear()
			return nil
		case <-ticker.C:
		}
	}
}
