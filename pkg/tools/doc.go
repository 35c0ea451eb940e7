// Package tools holds one command builder per wrapped external program.
//
// A builder is a pure function from a dispatch unit to a shell command
// line: it performs no I/O and has no side effects. The few tools that
// need something on disk before they run (stringtie's per-sample ctab
// directory) implement Preparer, which the pipeline calls outside of
// dry-run mode.
//
// Supported tools:
//
//	cutadapt       adapter trimming, one command per file
//	fastqc         read QC, one command per file
//	featurecounts  read counting, one command for all files
//	stringtie      transcript assembly, one command per file
//	hisat2         alignment piped through samtools view and sort
//	pool           samtools merge of grouped files
//	sort           samtools sort, one command per file
//	gtf2bed        annotation format conversion
package tools
