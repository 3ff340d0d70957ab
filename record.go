package sam2fastq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/hts/sam"
)

// AltContigSuffix is the naming convention for alternate-haplotype
// contigs in the reference. Even-length alignments to these contigs
// may carry corrupted bases (a known bwa mem defect), so they are
// marked suspect at parse time.
const AltContigSuffix = "_alt"

// End identifies which mate of a template a record belongs to.
type End uint8

const (
	// Unpaired means neither the READ1 nor the READ2 flag bit was set.
	Unpaired End = iota
	// R1 is the first mate of a pair.
	R1
	// R2 is the second mate of a pair.
	R2
)

func (e End) String() string {
	switch e {
	case R1:
		return "1"
	case R2:
		return "2"
	}
	return "unpaired"
}

// Record is one alignment record reduced to the fields needed to
// reconstruct the underlying read. Seq and Qual are always stored in
// reference-forward orientation; reverse-strand alignments are
// flipped once, in ParseRecord, and never again downstream.
type Record struct {
	// Template is the read-pair name shared by all alignments of the
	// same physical fragment.
	Template string
	End      End
	// Contig is the reference sequence the record aligned to.
	Contig string
	Seq    string
	Qual   string
	// Suspect marks records at risk of the alt-contig base
	// corruption: aligned to a *_alt contig with even-length sequence.
	Suspect bool
}

// Name returns the read name used on FASTQ output: the template name
// with a /1 or /2 suffix for paired ends, bare for unpaired reads.
func (r *Record) Name() string {
	if r.End == Unpaired {
		return r.Template
	}
	return r.Template + "/" + strconv.Itoa(int(r.End))
}

// MalformedRecordError is returned for SAM body lines that cannot be
// interpreted as a single alignment record.
type MalformedRecordError struct {
	Line   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed SAM record (%s): %q", e.Reason, e.Line)
}

// A SAM body line has 11 mandatory fields (QNAME..QUAL).
const minSAMFields = 11

// ParseRecord parses one tab-separated SAM body line.  Only QNAME,
// FLAG, RNAME, SEQ and QUAL are interpreted; remaining fields are
// passed over without validation.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < minSAMFields {
		return Record{}, &MalformedRecordError{
			Line:   line,
			Reason: fmt.Sprintf("%d fields, need %d", len(fields), minSAMFields),
		}
	}
	flagVal, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return Record{}, &MalformedRecordError{Line: line, Reason: "non-integer FLAG"}
	}
	flags := sam.Flags(flagVal)
	r := Record{
		Template: fields[0],
		Contig:   fields[2],
		Seq:      fields[9],
		Qual:     fields[10],
	}
	switch {
	case flags&sam.Read1 != 0 && flags&sam.Read2 != 0:
		return Record{}, &MalformedRecordError{Line: line, Reason: "flagged as both READ1 and READ2"}
	case flags&sam.Read1 != 0:
		r.End = R1
	case flags&sam.Read2 != 0:
		r.End = R2
	}
	if flags&sam.Reverse != 0 {
		r.Seq = reverseComplement(r.Seq)
		r.Qual = reverseString(r.Qual)
	}
	// The corruption is reported for reverse-strand alignments, but in
	// practice affects any alignment to an alt, so the flag is
	// strand-independent.
	r.Suspect = strings.HasSuffix(r.Contig, AltContigSuffix) && len(r.Seq)%2 == 0
	return r, nil
}

// dnaComplement maps each base to its complement.  Bases other than
// ACGT (e.g. N) map to themselves.
var dnaComplement [256]byte

func init() {
	for i := range dnaComplement {
		dnaComplement[i] = byte(i)
	}
	dnaComplement['A'] = 'T'
	dnaComplement['a'] = 't'
	dnaComplement['C'] = 'G'
	dnaComplement['c'] = 'g'
	dnaComplement['G'] = 'C'
	dnaComplement['g'] = 'c'
	dnaComplement['T'] = 'A'
	dnaComplement['t'] = 'a'
}

// reverseComplement computes the reverse complement of the given DNA
// string.
func reverseComplement(seq string) string {
	buf := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		buf[len(seq)-1-i] = dnaComplement[seq[i]]
	}
	return string(buf)
}

func reverseString(s string) string {
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		buf[len(s)-1-i] = s[i]
	}
	return string(buf)
}
