package synth

import (
	"math"
	"testing"

	"github.com/wavecraft/monosynth/pkg/dsp/gain"
	"github.com/wavecraft/monosynth/pkg/midi"
	"github.com/wavecraft/monosynth/pkg/process"
	"github.com/wavecraft/monosynth/pkg/voice"
)

const testRate = 44100.0

func newTestContext(channels, samples int) *process.Context {
	ctx := process.NewContext()
	ctx.SampleRate = testRate
	ctx.Output = make([][]float32, channels)
	for ch := range ctx.Output {
		ctx.Output[ch] = make([]float32, samples)
	}
	return ctx
}

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	p := New()
	if err := p.Initialize(testRate, 512); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return p
}

func TestRenderedNoteMatchesReference(t *testing.T) {
	p := newTestProcessor(t)
	ctx := newTestContext(2, 64)
	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 69, Velocity: 1.0},
	})

	if status := p.ProcessAudio(ctx); status != process.StatusKeepAlive {
		t.Fatalf("expected StatusKeepAlive, got %v", status)
	}

	// Independent render: sine at A4 with the amplitude ramping by a fixed
	// increment per sample and the master gain constant at its default.
	ampStep := 1.0 / (voice.DefaultRampTime * testRate)
	master := gain.DbToLinear(DefaultGainDb)
	phase := 0.0
	amp := 0.0
	for i := 0; i < 64; i++ {
		raw := math.Sin(2.0 * math.Pi * phase)
		amp += ampStep
		if amp > 1 {
			amp = 1
		}
		want := float32(raw * amp * master)
		if got := ctx.Output[0][i]; math.Abs(float64(got-want)) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
		phase += 440.0 / testRate
	}

	// Every channel carries the same mono signal.
	for i := range ctx.Output[0] {
		if ctx.Output[0][i] != ctx.Output[1][i] {
			t.Fatalf("channels diverge at sample %d", i)
		}
	}
}

func TestEventAppliedAtExactOffset(t *testing.T) {
	p := newTestProcessor(t)
	ctx := newTestContext(1, 64)
	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 10}, NoteNumber: 69, Velocity: 1.0},
	})
	p.ProcessAudio(ctx)

	for i := 0; i < 10; i++ {
		if ctx.Output[0][i] != 0 {
			t.Fatalf("sample %d precedes the note and must be 0, got %v", i, ctx.Output[0][i])
		}
	}

	// At the event's offset the voice opens: the oscillator has been
	// running at the idle pitch, so the first audible sample is the sine at
	// the accumulated phase, scaled by one ramp increment and the master
	// gain.
	phase := 10.0 * DefaultFrequency / testRate
	want := math.Sin(2.0*math.Pi*phase) * (1.0 / (voice.DefaultRampTime * testRate)) * gain.DbToLinear(DefaultGainDb)
	if got := float64(ctx.Output[0][10]); math.Abs(got-want) > 1e-6 {
		t.Errorf("sample 10: got %v, want %v", got, want)
	}
}

func TestSilentUntilFirstNote(t *testing.T) {
	p := newTestProcessor(t)
	ctx := newTestContext(2, 128)

	for block := 0; block < 4; block++ {
		ctx.SetEvents(nil)
		if status := p.ProcessAudio(ctx); status != process.StatusKeepAlive {
			t.Fatalf("block %d: expected StatusKeepAlive, got %v", block, status)
		}
		for ch := range ctx.Output {
			for i, v := range ctx.Output[ch] {
				if v != 0 {
					t.Fatalf("block %d channel %d sample %d: expected exact silence, got %v",
						block, ch, i, v)
				}
			}
		}
	}
}

func TestIdlePhaseAdvancesBeforeFirstNote(t *testing.T) {
	p := newTestProcessor(t)
	ctx := newTestContext(1, 64)

	// One silent block first: the oscillator still runs at the idle pitch.
	ctx.SetEvents(nil)
	p.ProcessAudio(ctx)

	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 69, Velocity: 1.0},
	})
	p.ProcessAudio(ctx)

	phase := 64.0 * DefaultFrequency / testRate
	want := math.Sin(2.0*math.Pi*phase) * (1.0 / (voice.DefaultRampTime * testRate)) * gain.DbToLinear(DefaultGainDb)
	if got := float64(ctx.Output[0][0]); math.Abs(got-want) > 1e-6 {
		t.Errorf("first audible sample: got %v, want %v", got, want)
	}
}

func TestResetMatchesFreshProcessor(t *testing.T) {
	used := newTestProcessor(t)
	ctx := newTestContext(1, 64)
	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 72, Velocity: 0.7},
	})
	used.ProcessAudio(ctx)
	used.Reset()

	fresh := newTestProcessor(t)
	usedCtx := newTestContext(1, 64)
	freshCtx := newTestContext(1, 64)
	events := []midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 69, Velocity: 1.0},
	}
	usedCtx.SetEvents(events)
	freshCtx.SetEvents(events)
	used.ProcessAudio(usedCtx)
	fresh.ProcessAudio(freshCtx)

	for i := range usedCtx.Output[0] {
		if usedCtx.Output[0][i] != freshCtx.Output[0][i] {
			t.Fatalf("sample %d differs after reset: %v vs %v",
				i, usedCtx.Output[0][i], freshCtx.Output[0][i])
		}
	}
}

func TestInitializeValidation(t *testing.T) {
	p := New()
	if err := p.Initialize(0, 512); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if err := p.Initialize(-44100, 512); err == nil {
		t.Error("expected error for negative sample rate")
	}
	if err := p.Initialize(44100, 0); err == nil {
		t.Error("expected error for zero block size")
	}
}

func TestParameterDefaults(t *testing.T) {
	p := New()
	params := p.Parameters()

	if params.Count() != 3 {
		t.Fatalf("expected 3 parameters, got %d", params.Count())
	}

	g := params.Get(ParamGain)
	if g == nil || g.Unit != "dB" || g.PlainValue() != DefaultGainDb {
		t.Errorf("gain default: got %+v", g)
	}
	f := params.Get(ParamFrequency)
	if f == nil || f.Unit != "Hz" {
		t.Fatal("frequency parameter missing or mislabeled")
	}
	if got := f.PlainValue(); math.Abs(got-DefaultFrequency) > 1e-6 {
		t.Errorf("frequency default: got %v, want %v", got, DefaultFrequency)
	}
	m := params.Get(ParamMode)
	if m == nil || m.PlainValue() != 0 {
		t.Errorf("mode default: got %+v", m)
	}
}

func BenchmarkProcessAudio(b *testing.B) {
	p := New()
	if err := p.Initialize(testRate, 512); err != nil {
		b.Fatal(err)
	}
	ctx := newTestContext(2, 512)
	ctx.SetEvents([]midi.Event{
		midi.NoteOnEvent{BaseEvent: midi.BaseEvent{Offset: 0}, NoteNumber: 69, Velocity: 1.0},
	})
	p.ProcessAudio(ctx)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.SetEvents(nil)
		p.ProcessAudio(ctx)
	}
}
