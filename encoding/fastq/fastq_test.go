package fastq

import (
	"bytes"
	"strings"
	"testing"
)

const fq1 = `@ERR894727.320/1
TTGTCACATATCTGCATCCA
+
AAAAAEEEEEEE#EEAEEEE
@ERR894727.351/1
CATCATCAGGTCGNTATGCA
+
EEEEAEEEEEEE#EEAEEEE
`

const fq2 = `@ERR894727.320/2
GGTCTTCAAGTCCCATTGGA
+
EEEEEAAEEEEE#EEAEEEE
@ERR894727.351/2
ATTGCCCGGTAGCTAAATCA
+
AAEEEEAEEEEE#EEAEEEE
`

func scanErr(s string) error {
	scan := NewScanner(strings.NewReader(s))
	var r Read
	for scan.Scan(&r) {
	}
	return scan.Err()
}

func TestScanner(t *testing.T) {
	s := NewScanner(strings.NewReader(fq1))
	var r Read
	if !s.Scan(&r) {
		t.Fatal(s.Err())
	}
	want := Read{
		ID:   "@ERR894727.320/1",
		Seq:  "TTGTCACATATCTGCATCCA",
		Unk:  "+",
		Qual: "AAAAAEEEEEEE#EEAEEEE",
	}
	if got := r; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	var n int
	for s.Scan(&r) {
		n++
	}
	if got, want := n, 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if err := s.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestScannerErrors(t *testing.T) {
	if got, want := scanErr("ERR894727.320/1\nACGT"), ErrInvalid; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := scanErr("@ERR894727.320/1\nACGT"), ErrShort; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := scanErr("@ERR894727.320/1\nACGT\nEEEE\nEEEE"), ErrInvalid; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var (
		s = NewScanner(strings.NewReader(fq1))
		b = new(bytes.Buffer)
		w = NewWriter(b)
		r Read
	)
	for s.Scan(&r) {
		if err := w.Write(&r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), fq1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPairWriter(t *testing.T) {
	var b1, b2 bytes.Buffer
	w := NewPairWriter(&b1, &b2)
	err := w.Write(
		&Read{ID: "@ERR894727.320/1", Seq: "ACGT", Unk: "+", Qual: "EEEE"},
		&Read{ID: "@ERR894727.320/2", Seq: "TTGA", Unk: "+", Qual: "AAEE"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b1.String(), "@ERR894727.320/1\nACGT\n+\nEEEE\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := b2.String(), "@ERR894727.320/2\nTTGA\n+\nAAEE\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPairScanner(t *testing.T) {
	s := NewPairScanner(strings.NewReader(fq1), strings.NewReader(fq2))
	var r1, r2 Read
	n := 0
	for s.Scan(&r1, &r2) {
		if got, want := r1.ID[:len(r1.ID)-2], r2.ID[:len(r2.ID)-2]; got != want {
			t.Errorf("discordant pair names: %v, %v", r1.ID, r2.ID)
		}
		n++
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
	if got, want := n, 2; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// R2 stream one record short.
	short := NewPairScanner(strings.NewReader(fq1), strings.NewReader(strings.Join(strings.SplitAfter(fq2, "\n")[:4], "")))
	for short.Scan(&r1, &r2) {
	}
	if got, want := short.Err(), ErrDiscordant; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
