package main

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	log "github.com/rs/zerolog/log"

	"github.com/wavecraft/monosynth/pkg/midi"
	"github.com/wavecraft/monosynth/pkg/process"
	"github.com/wavecraft/monosynth/pkg/synth"
)

// blockSize is the number of samples rendered per engine call. The audio
// backend may ask for arbitrary byte counts; the player always renders
// whole blocks and hands out the remainder on the next read.
const blockSize = 256

// Player pumps the synthesis engine into an oto output stream. The
// backend pulls from Read on its own thread; every blockSize samples the
// player drains the due events from the queue and runs one engine block.
type Player struct {
	proc  *synth.Processor
	queue *midi.EventQueue

	ctx     *process.Context
	events  []midi.Event
	encoded []byte
	pending []byte

	otoCtx *oto.Context
	player *oto.Player

	mu      sync.Mutex
	started bool
}

// NewPlayer prepares a mono float32 output stream at the given sample
// rate. It blocks until the audio backend is ready.
func NewPlayer(proc *synth.Processor, queue *midi.EventQueue, sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &Player{
		proc:    proc,
		queue:   queue,
		events:  make([]midi.Event, 0, 64),
		encoded: make([]byte, blockSize*4),
		otoCtx:  otoCtx,
	}
	p.ctx = process.NewContext()
	p.ctx.SampleRate = float64(sampleRate)
	p.ctx.Output = [][]float32{make([]float32, blockSize)}
	p.player = otoCtx.NewPlayer(p)
	return p, nil
}

// Read renders audio on demand for the backend. Allocation-free after
// construction.
func (p *Player) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if len(p.pending) == 0 {
			p.renderBlock()
		}
		c := copy(buf[n:], p.pending)
		p.pending = p.pending[c:]
		n += c
	}
	return n, nil
}

func (p *Player) renderBlock() {
	p.events = p.queue.CollectBlock(blockSize, p.events[:0])
	p.ctx.SetEvents(p.events)
	p.proc.ProcessAudio(p.ctx)

	for i, s := range p.ctx.Output[0] {
		binary.LittleEndian.PutUint32(p.encoded[i*4:], math.Float32bits(s))
	}
	p.pending = p.encoded
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
		log.Debug().Int("block_size", blockSize).Msg("playback started")
	}
}

// Close stops playback and releases the output stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	return err
}
