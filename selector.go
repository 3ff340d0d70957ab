package sam2fastq

import "fmt"

// equal reports whether a and b reconstruct the same read: same
// template, end, sequence and qualities.  Contig and original strand
// are irrelevant, since sequences are already forward-normalized.
func equal(a, b *Record) bool {
	return a.Template == b.Template &&
		a.End == b.End &&
		a.Seq == b.Seq &&
		a.Qual == b.Qual
}

// dominates reports whether a should replace b as the representative
// for their shared (template, end): a is not suspect, and b is either
// suspect or carries a shorter sequence.
func dominates(a, b *Record) bool {
	if a.Template != b.Template || a.End != b.End || a.Suspect {
		return false
	}
	return b.Suspect || len(a.Seq) > len(b.Seq)
}

// ConflictingAlignmentsError is returned when two non-suspect
// alignments disagree on the content of the same read end.  There is
// no defensible tie-break between them, so the run aborts.
type ConflictingAlignmentsError struct {
	Template string
	End      End
	Seq      string
	PrevSeq  string
}

func (e *ConflictingAlignmentsError) Error() string {
	return fmt.Sprintf("non-suspect alignments disagree on end %s of template %s: %s vs %s",
		e.End, e.Template, e.Seq, e.PrevSeq)
}

// selectBest folds r into cur, the current representative for r's
// (template, end), and returns the new representative.
func selectBest(cur, r *Record) (*Record, error) {
	switch {
	case cur == nil:
		return r, nil
	case dominates(r, cur):
		return r, nil
	case !r.Suspect && len(r.Seq) >= len(cur.Seq) && !equal(r, cur):
		return nil, &ConflictingAlignmentsError{
			Template: r.Template,
			End:      r.End,
			Seq:      r.Seq,
			PrevSeq:  cur.Seq,
		}
	}
	// r is a duplicate of cur, or suspect and no better than cur.
	return cur, nil
}
