/*Command bio-sam2fastq turns name-sorted SAM into properly
  deduplicated paired FASTQ.  Aligners emit multiple records per read
  (secondary and supplementary alignments), and bwa mem corrupts bases
  in some even-length alignments to alternate contigs; bio-sam2fastq
  keeps one clean record per mate per template and drops templates
  that do not resolve both mates.

  The input must be grouped contiguously by read name (samtools sort
  -n order).  SAM header lines are not FASTQ and are discarded unless
  -sam-header names a file to receive them.

  Usage: samtools sort -n -O sam aln.bam | bio-sam2fastq -fq1 r1.fq -fq2 r2.fq
*/
package main
