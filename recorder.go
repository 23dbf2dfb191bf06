package flurry

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// recorderBatch is how many frames are buffered before a CSV write.
const recorderBatch = 64

// Recorder is a FrameObserver that writes frame stats as CSV rows. The header
// is written with the first batch only. Useful for tuning presets offline.
type Recorder struct {
	out           io.Writer
	buf           []FrameStats
	headerWritten bool
	err           error
}

// NewRecorder returns a recorder writing to out.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out, buf: make([]FrameStats, 0, recorderBatch)}
}

// ObserveFrame implements FrameObserver. After the first write error the
// recorder drops further frames; see Err.
func (r *Recorder) ObserveFrame(fs FrameStats) {
	if r.err != nil {
		return
	}
	r.buf = append(r.buf, fs)
	if len(r.buf) >= recorderBatch {
		r.err = r.Flush()
	}
}

// Flush writes buffered frames.
func (r *Recorder) Flush() error {
	if len(r.buf) == 0 {
		return r.err
	}
	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(r.buf, r.out)
		r.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(r.buf, r.out)
	}
	r.buf = r.buf[:0]
	if err != nil {
		return fmt.Errorf("write frame stats: %w", err)
	}
	return nil
}

// Err returns the first error hit while writing.
func (r *Recorder) Err() error {
	return r.err
}
