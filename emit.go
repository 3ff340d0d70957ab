package sam2fastq

import (
	"io"

	"github.com/grailbio/sam2fastq/encoding/fastq"
)

// Emitter writes resolved read pairs to the two mate FASTQ streams.
// The two records of a pair are written as a unit, mate 1 first, so
// the streams stay position-synchronized.
type Emitter struct {
	w *fastq.PairWriter
}

// NewEmitter returns an Emitter writing R1 records to fq1 and R2
// records to fq2.
func NewEmitter(fq1, fq2 io.Writer) *Emitter {
	return &Emitter{w: fastq.NewPairWriter(fq1, fq2)}
}

// WritePair emits one read pair.  r1 and r2 must be the resolved
// representatives of the two ends of the same template.
func (e *Emitter) WritePair(r1, r2 *Record) error {
	return e.w.Write(
		&fastq.Read{ID: "@" + r1.Name(), Seq: r1.Seq, Unk: "+", Qual: r1.Qual},
		&fastq.Read{ID: "@" + r2.Name(), Seq: r2.Seq, Unk: "+", Qual: r2.Qual},
	)
}
