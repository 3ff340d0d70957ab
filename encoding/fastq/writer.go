package fastq

import "io"

var newline = []byte{'\n'}

// Writer is a FASTQ writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a Writer that writes reads to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the read r in FASTQ format.  After the first write
// error, Write becomes a no-op returning that error.
func (w *Writer) Write(r *Read) error {
	w.writeln(r.ID)
	w.writeln(r.Seq)
	w.writeln(r.Unk)
	w.writeln(r.Qual)
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

// PairWriter writes read pairs to two parallel FASTQ streams.  The
// two records of a pair are written as a unit, R1 first, so the
// streams remain record-synchronized.
type PairWriter struct {
	r1, r2 *Writer
}

// NewPairWriter creates a PairWriter from the R1 and R2 writers.
func NewPairWriter(r1, r2 io.Writer) *PairWriter {
	return &PairWriter{r1: NewWriter(r1), r2: NewWriter(r2)}
}

// Write writes one read pair.
func (p *PairWriter) Write(r1, r2 *Read) error {
	if err := p.r1.Write(r1); err != nil {
		return err
	}
	return p.r2.Write(r2)
}
