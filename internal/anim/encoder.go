// Package anim turns a canvas that is redrawn once per frame into a
// streamed animation.
package anim

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"blot/internal/postprocess"
	"blot/internal/raster"
)

// State is the encoder's position in its Idle → Stepping → Done cycle.
type State uint8

const (
	Idle State = iota
	Stepping
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Frame describes the frame the caller is about to draw.
type Frame struct {
	Index, Total  int
	Width, Height int
	// Progress is Index/Total, in [0, 1).
	Progress float64
	// Delta is the delay given to the previous frame, in seconds.
	Delta float64
}

type opKind uint8

const (
	opFill opKind = iota
	opSetPixel
)

// Op is a canvas mutation routed through Encoder.Write.
type Op struct {
	kind  opKind
	x, y  int
	color raster.RGBA8
}

func Fill(c raster.RGBA8) Op { return Op{kind: opFill, color: c} }

func SetPixel(x, y int, c raster.RGBA8) Op {
	return Op{kind: opSetPixel, x: x, y: y, color: c}
}

// Options configure an Encoder.
type Options struct {
	FrameRate  float64
	FrameCount int
	// OutputSize, when non-zero and smaller than the canvas, downsamples
	// each frame to OutputSize×OutputSize before it reaches the sink.
	OutputSize int
	Logger     *slog.Logger
}

// Encoder owns a canvas and a sink. Step flushes the previous frame before
// handing the canvas back, so the content drawn for frame N is what gets
// encoded as frame N. Only one frame of pixels is ever held.
type Encoder struct {
	canvas raster.Canvas
	sink   FrameSink
	delay  *DelayScheduler
	log    *slog.Logger

	total, head int
	outSize     int
	pending     bool
	state       State
	finished    bool
	err         error
}

func NewEncoder(canvas raster.Canvas, sink FrameSink, opts Options) *Encoder {
	if opts.FrameCount < 0 {
		opts.FrameCount = 0
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	outSize := opts.OutputSize
	if outSize >= canvas.Width() && outSize >= canvas.Height() {
		outSize = 0
	}
	return &Encoder{
		canvas:  canvas,
		sink:    sink,
		delay:   NewDelayScheduler(opts.FrameRate),
		log:     log,
		total:   opts.FrameCount,
		outSize: outSize,
	}
}

func (e *Encoder) State() State { return e.state }

// Err returns the error that moved the encoder to Failed, if any.
func (e *Encoder) Err() error { return e.err }

// Canvas returns a Canvas whose mutations go through Write.
func (e *Encoder) Canvas() *StreamCanvas { return &StreamCanvas{enc: e} }

func (e *Encoder) frameSize() (int, int) {
	if e.outSize > 0 {
		return e.outSize, e.outSize
	}
	return e.canvas.Width(), e.canvas.Height()
}

func (e *Encoder) fail(err error) error {
	e.state = Failed
	e.err = err
	return err
}

func (e *Encoder) start() error {
	if e.state != Idle {
		return nil
	}
	w, h := e.frameSize()
	if err := e.sink.WriteHeader(w, h); err != nil {
		return e.fail(fmt.Errorf("anim: write header: %w", err))
	}
	e.state = Stepping
	return nil
}

func (e *Encoder) flush() error {
	if !e.pending {
		return nil
	}
	e.pending = false

	var img image.Image = e.canvas.Image()
	if e.outSize > 0 {
		img = postprocess.Downsample(e.canvas.Image(), e.outSize, e.outSize)
	}
	delay := e.delay.Next()
	if err := e.sink.WriteFrame(img, delay); err != nil {
		return e.fail(fmt.Errorf("anim: write frame %d: %w", e.head-1, err))
	}
	e.log.LogAttrs(context.Background(), slog.LevelDebug, "frame encoded",
		slog.Int("index", e.head-1), slog.Int("delay_cs", delay))
	return nil
}

// Step flushes the pending frame, then either reports done (ok == false)
// or advances to the next frame and describes it.
func (e *Encoder) Step() (Frame, bool, error) {
	if e.state == Failed {
		return Frame{}, false, e.err
	}
	if e.state == Done {
		return Frame{}, false, nil
	}
	if err := e.start(); err != nil {
		return Frame{}, false, err
	}
	if err := e.flush(); err != nil {
		return Frame{}, false, err
	}
	if e.head >= e.total {
		e.state = Done
		return Frame{}, false, nil
	}

	idx := e.head
	e.head++
	e.pending = true
	w, h := e.frameSize()
	return Frame{
		Index:    idx,
		Total:    e.total,
		Width:    w,
		Height:   h,
		Progress: float64(idx) / float64(e.total),
		Delta:    float64(e.delay.Last()) / 100,
	}, true, nil
}

// Write applies op to the canvas. It is ignored unless a frame is being
// drawn, that is after a Step that returned a frame.
func (e *Encoder) Write(op Op) {
	if e.state != Stepping || !e.pending {
		return
	}
	switch op.kind {
	case opFill:
		e.canvas.Fill(op.color)
	case opSetPixel:
		e.canvas.SetPixel(op.x, op.y, op.color)
	}
}

// Finish flushes the last frame and closes the sink. Calls after the first
// successful one do nothing.
func (e *Encoder) Finish() error {
	if e.finished {
		return nil
	}
	if e.state == Failed {
		return e.err
	}
	if err := e.start(); err != nil {
		return err
	}
	if err := e.flush(); err != nil {
		return err
	}
	if err := e.sink.Close(); err != nil {
		return e.fail(fmt.Errorf("anim: close: %w", err))
	}
	e.state = Done
	e.finished = true
	e.log.Debug("animation finished", "frames", e.head)
	return nil
}
