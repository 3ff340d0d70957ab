// Package sam2fastq reconstructs deduplicated paired FASTQ from
// name-sorted SAM.  Aligners emit multiple records per read
// (secondary, supplementary), and bwa mem corrupts bases in some
// even-length alignments to alternate contigs; this package picks one
// clean representative per read end and re-pairs the mates.
//
// Input records must arrive grouped contiguously by template name
// (name-sorted order).  That precondition is the caller's; it is not
// re-verified here, and out-of-order input silently splits a template
// across groups.
package sam2fastq

import (
	"bufio"
	"io"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Reporter receives non-fatal per-template diagnostics.
type Reporter interface {
	Warnf(format string, args ...interface{})
}

// logReporter forwards warnings to the process log.
type logReporter struct{}

func (logReporter) Warnf(format string, args ...interface{}) {
	log.Error.Printf(format, args...)
}

// Opts configures a deduplication pass.
type Opts struct {
	// HeaderOut receives SAM header lines verbatim, one per Write.
	// Nil discards them.
	HeaderOut io.Writer
	// Reporter receives warnings about suspect-only ends.  Nil logs
	// them through base/log.
	Reporter Reporter
}

// DefaultOpts discards headers and logs warnings.
var DefaultOpts = Opts{}

// Stats counts per-run totals for one deduplication pass.
type Stats struct {
	// Headers is the # of header lines passed through.
	Headers int
	// Records is the # of alignment records parsed.
	Records int
	// Templates is the # of distinct templates finalized.
	Templates int
	// Pairs is the # of read pairs written.
	Pairs int
	// Duplicates is the # of records discarded as equal to, or
	// dominated by, the current representative.
	Duplicates int
	// SuspectOnly is the # of template ends dropped because every
	// alignment seen for them was suspect.
	SuspectOnly int
	// Unpaired is the # of templates dropped for resolving fewer
	// than two ends.
	Unpaired int
}

// Deduplicator is the streaming accumulator.  A single template group
// is open at any time, so memory stays bounded by the records of the
// current template rather than the whole input.
type Deduplicator struct {
	emit  *Emitter
	stats *Stats
	rep   Reporter

	open     bool
	template string
	best     [3]*Record // indexed by End
}

// NewDeduplicator returns a Deduplicator that hands finalized groups
// to emit and accumulates counters into stats.
func NewDeduplicator(opts Opts, emit *Emitter, stats *Stats) *Deduplicator {
	rep := opts.Reporter
	if rep == nil {
		rep = logReporter{}
	}
	return &Deduplicator{emit: emit, stats: stats, rep: rep}
}

// Add folds one record into the open template group, finalizing the
// previous group first if r starts a new template.
func (d *Deduplicator) Add(r Record) error {
	if d.open && r.Template != d.template {
		if err := d.finalize(); err != nil {
			return err
		}
	}
	if !d.open {
		d.open = true
		d.template = r.Template
		d.best = [3]*Record{}
	}
	cur := d.best[r.End]
	best, err := selectBest(cur, &r)
	if err != nil {
		return err
	}
	if cur != nil {
		// A representative already existed, so r either replaced it
		// or was discarded; both count as a removed duplicate.
		d.stats.Duplicates++
	}
	d.best[r.End] = best
	return nil
}

// Flush finalizes the open template group, if any.  It must be called
// once, at end of input.
func (d *Deduplicator) Flush() error {
	if !d.open {
		return nil
	}
	return d.finalize()
}

func (d *Deduplicator) finalize() error {
	d.open = false
	d.stats.Templates++
	for end, r := range d.best {
		if r != nil && r.Suspect {
			d.rep.Warnf("only suspect alignments found for end %s of template %s, skipping",
				End(end), r.Template)
			d.stats.SuspectOnly++
			d.best[end] = nil
		}
	}
	r1, r2 := d.best[R1], d.best[R2]
	if r1 == nil || r2 == nil {
		d.stats.Unpaired++
		return nil
	}
	d.stats.Pairs++
	return d.emit.WritePair(r1, r2)
}

// Maximum SAM line length accepted.  Long-read alignments can exceed
// bufio.Scanner's 64KiB default.
const maxLineBytes = 16 << 20

// Process streams name-sorted SAM from in and writes the mate FASTQ
// streams to fq1 and fq2.  Header lines go to opts.HeaderOut.  It
// returns the pass's Stats along with the first fatal error, if any;
// a fatal error (malformed record, conflicting alignments, write
// failure) aborts the pass immediately.
func Process(opts Opts, in io.Reader, fq1, fq2 io.Writer) (Stats, error) {
	var stats Stats
	dedup := NewDeduplicator(opts, NewEmitter(fq1, fq2), &stats)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if len(line) > 0 && line[0] == '@' {
			stats.Headers++
			if opts.HeaderOut != nil {
				if _, err := io.WriteString(opts.HeaderOut, line+"\n"); err != nil {
					return stats, errors.Wrap(err, "write SAM header")
				}
			}
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return stats, errors.Wrapf(err, "line %d", lineno)
		}
		stats.Records++
		if err := dedup.Add(rec); err != nil {
			return stats, errors.Wrapf(err, "line %d", lineno)
		}
	}
	if err := sc.Err(); err != nil {
		return stats, errors.Wrap(err, "read SAM")
	}
	if err := dedup.Flush(); err != nil {
		return stats, err
	}
	return stats, nil
}
