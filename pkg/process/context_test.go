package process

import (
	"testing"

	"github.com/wavecraft/monosynth/pkg/midi"
)

type recordingSink struct {
	notes   []uint8
	samples []int32
	at      int32
}

func (r *recordingSink) ProcessEvent(e midi.Event) {
	switch ev := e.(type) {
	case midi.NoteOnEvent:
		r.notes = append(r.notes, ev.NoteNumber)
	case midi.NoteOffEvent:
		r.notes = append(r.notes, ev.NoteNumber)
	}
	r.samples = append(r.samples, r.at)
}

func TestDispatchThroughDeliversDueEventsOnce(t *testing.T) {
	ctx := NewContext()
	ctx.Output = [][]float32{make([]float32, 64)}
	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 1},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 10}, NoteNumber: 64, Velocity: 1},
		midi.NoteOffEvent{BaseEvent: midi.BaseEvent{Offset: 10}, NoteNumber: 64},
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 50}, NoteNumber: 67, Velocity: 1},
	})

	sink := &recordingSink{}
	for i := int32(0); i < 64; i++ {
		sink.at = i
		ctx.DispatchThrough(i, sink)
	}

	wantNotes := []uint8{60, 64, 64, 67}
	wantSamples := []int32{0, 10, 10, 50}
	if len(sink.notes) != len(wantNotes) {
		t.Fatalf("expected %d dispatches, got %d", len(wantNotes), len(sink.notes))
	}
	for i := range wantNotes {
		if sink.notes[i] != wantNotes[i] || sink.samples[i] != wantSamples[i] {
			t.Errorf("dispatch %d: got note %d at sample %d, want note %d at sample %d",
				i, sink.notes[i], sink.samples[i], wantNotes[i], wantSamples[i])
		}
	}
	if ctx.PendingEvents() != 0 {
		t.Errorf("all events should be dispatched, %d pending", ctx.PendingEvents())
	}
}

func TestSetEventsRearmsCursor(t *testing.T) {
	ctx := NewContext()
	ctx.Output = [][]float32{make([]float32, 8)}
	events := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 60, Velocity: 1},
	}

	sink := &recordingSink{}
	ctx.SetEvents(events)
	ctx.DispatchThrough(7, sink)
	ctx.SetEvents(events)
	ctx.DispatchThrough(7, sink)

	if len(sink.notes) != 2 {
		t.Errorf("cursor should reset per block, got %d dispatches", len(sink.notes))
	}
}

func TestWriteSampleReachesAllChannels(t *testing.T) {
	ctx := NewContext()
	ctx.Output = [][]float32{make([]float32, 4), make([]float32, 4)}
	ctx.WriteSample(2, 0.5)

	for ch := 0; ch < 2; ch++ {
		if ctx.Output[ch][2] != 0.5 {
			t.Errorf("channel %d sample 2: expected 0.5, got %f", ch, ctx.Output[ch][2])
		}
	}
	if ctx.NumChannels() != 2 || ctx.NumSamples() != 4 {
		t.Errorf("unexpected geometry: %d channels, %d samples", ctx.NumChannels(), ctx.NumSamples())
	}
}

func TestClear(t *testing.T) {
	ctx := NewContext()
	ctx.Output = [][]float32{{1, 2}, {3, 4}}
	ctx.Clear()
	for ch := range ctx.Output {
		for i, v := range ctx.Output[ch] {
			if v != 0 {
				t.Errorf("channel %d sample %d not cleared: %f", ch, i, v)
			}
		}
	}
}
