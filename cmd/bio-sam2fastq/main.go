package main

// See doc.go for documentation

import (
	"bufio"
	"flag"
	"io"
	"os"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/sam2fastq"
)

var (
	inputPath  = flag.String("input-sam", "", "Name-sorted SAM input. Empty or \"-\" reads stdin. Compressed inputs (.gz, .bz2) are expanded.")
	fq1Path    = flag.String("fq1", "", "Output FASTQ for READ1 mates (required)")
	fq2Path    = flag.String("fq2", "", "Output FASTQ for READ2 mates (required)")
	headerPath = flag.String("sam-header", "", "Optional file to receive the SAM header lines")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *fq1Path == "" || *fq2Path == "" {
		log.Fatalf("both -fq1 and -fq2 must be set")
	}
	ctx := vcontext.Background()
	closers := errors.Once{}

	in := io.Reader(os.Stdin)
	if *inputPath != "" && *inputPath != "-" {
		inFile, err := file.Open(ctx, *inputPath)
		if err != nil {
			log.Fatalf("open %s: %v", *inputPath, err)
		}
		defer func() { closers.Set(inFile.Close(ctx)) }()
		in = inFile.Reader(ctx)
		if u := compress.NewReaderPath(in, inFile.Name()); u != nil {
			in = u
		}
	}

	create := func(path string) (*bufio.Writer, file.File) {
		out, err := file.Create(ctx, path)
		if err != nil {
			log.Fatalf("create %s: %v", path, err)
		}
		return bufio.NewWriter(out.Writer(ctx)), out
	}
	w1, out1 := create(*fq1Path)
	w2, out2 := create(*fq2Path)

	opts := sam2fastq.DefaultOpts
	var (
		hw   *bufio.Writer
		hout file.File
	)
	if *headerPath != "" {
		hw, hout = create(*headerPath)
		opts.HeaderOut = hw
	}

	stats, err := sam2fastq.Process(opts, in, w1, w2)
	if err != nil {
		log.Fatalf("bio-sam2fastq: %v", err)
	}
	if hout != nil {
		closers.Set(hw.Flush())
		closers.Set(hout.Close(ctx))
	}
	closers.Set(w1.Flush())
	closers.Set(out1.Close(ctx))
	closers.Set(w2.Flush())
	closers.Set(out2.Close(ctx))
	if err := closers.Err(); err != nil {
		log.Fatalf("bio-sam2fastq: %v", err)
	}
	log.Printf("%d records in %d templates: %d pairs written, %d duplicates discarded, %d unpaired templates dropped, %d suspect-only ends",
		stats.Records, stats.Templates, stats.Pairs, stats.Duplicates, stats.Unpaired, stats.SuspectOnly)
}
