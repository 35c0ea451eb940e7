package scirnap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run bioinformatics tools over a directory of files"
	MsgRunShort        = "Run a tool over the files of a data directory"
	MsgToolsShort      = "List the supported tools"
	MsgToolsLong       = "List the supported tools with their default name, file suffix and how their files are dispatched."
	MsgSummariseShort  = "Collect hisat2 alignment rates into one table"
	MsgSummariseLong   = "Read every hisat2 summary file in --output-dir and append one '<file>\\t<overall alignment rate>' line per file to --out."
	MsgGenConfigShort  = "Print a configuration file template"
	MsgGenConfigLong   = "Print the default configuration with every value commented out, or with --effective the configuration resolved from all sources."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgDryRunNotice   = "[warning]DRY RUN[/warning] commands were logged, not executed"
	MsgRunDone        = "[success]Done:[/success] %s ran over %d file(s)"
	MsgLogFileAt      = "Run log: [path]%s[/path]"
	MsgNoFiles        = "[warning]No files[/warning] in %s contain %q"
	MsgSummaryWritten = "[success]Wrote[/success] %d alignment rate(s) to [path]%s[/path]"
	MsgUnpaired       = "[warning]No pair found[/warning] for %s, skipping"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default ./scirnap.toml or ./scirnap.yaml)"
	MsgFlagDataDir   = "Directory with the input files"
	MsgFlagOutputDir = "Output directory (default: the data directory)"
	MsgFlagProgram   = "Program command or location"
	MsgFlagParams    = "Parameter string passed to the program"
	MsgFlagSuffix    = "Only use files whose name contains this (e.g. .fq.gz)"
	MsgFlagThreads   = "Number of files processed in parallel"
	MsgFlagDryRun    = "Log the commands without running them"
	MsgFlagLogFile   = "Run log path (default {output-dir}/{NAME}_logfile-{ddmmyyyy-HHMMSS}.txt)"
	MsgFlagName      = "Name used in output file names"
	MsgFlagMode      = "cutadapt, hisat2: s (single-end) or p (paired-end)"
	MsgFlagGTF       = "featurecounts, stringtie: genome annotation (GTF) file"
	MsgFlagCtabDir   = "stringtie: directory for the Ballgown ctab files"
	MsgFlagIndex     = "hisat2: index prefix"
	MsgFlagSamtools  = "hisat2: samtools command or location"
	MsgFlagMultiQC   = "cutadapt: MultiQC FastQC report (multiqc_fastqc.txt)"
	MsgFlagQCMetric  = "cutadapt: only trim files whose status for this report column matches --qc-flag"
	MsgFlagQCFlag    = "cutadapt: pass, warn or fail"
	MsgFlagRename    = "pool: YAML file mapping a group's first file to its merged name"
	MsgFlagBarcodes  = "pool: barcode sheet (CSV with Barcode,SampleName or YAML) to merge files per sample"
	MsgFlagOut       = "File the alignment rates are appended to"
	MsgFlagEffective = "Print the configuration resolved from all sources"
	MsgFlagManDir    = "Write one man page per command into this directory instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
