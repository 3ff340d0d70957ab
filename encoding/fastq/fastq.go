// Package fastq reads and writes FASTQ records.
package fastq

// A Read is one FASTQ record: an ID line (leading "@" included), a
// sequence, the line-3 separator, and a quality string.
type Read struct {
	ID, Seq, Unk, Qual string
}
