package scirnap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/scirnap/internal/version"
	"github.com/arthur-debert/scirnap/pkg/config"
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	"github.com/arthur-debert/scirnap/pkg/summary"
	"github.com/arthur-debert/scirnap/pkg/tools"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Short:   MsgToolsShort,
		Long:    MsgToolsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := make([]tools.Spec, 0, len(tools.Names()))
			for _, name := range tools.Names() {
				s, err := tools.Lookup(name)
				if err != nil {
					return err
				}
				specs = append(specs, s)
			}

			table, err := printer(cmd).ToolTable(specs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newSummariseCmd(opts *globalOptions) *cobra.Command {
	var outputDir, out string

	cmd := &cobra.Command{
		Use:     "summarise",
		Aliases: []string{"summarize"},
		Short:   MsgSummariseShort,
		Long:    MsgSummariseLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				cfg, err := opts.loadConfig(nil)
				if err != nil {
					return err
				}
				outputDir = cfg.OutputDir
			}
			if outputDir == "" {
				return errors.New(errors.ErrConfigInvalid, "an output directory is required (--output-dir)")
			}
			if out == "" {
				out = filepath.Join(outputDir, "alignment_rates.tsv")
			}

			rows, err := summary.Summarise(filesystem.NewOS(), outputDir, out)
			if err != nil {
				return err
			}
			say(cmd, MsgSummaryWritten, len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", MsgFlagOutputDir)
	cmd.Flags().StringVarP(&out, "out", "o", "", MsgFlagOut)
	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !effective {
				fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}

			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			content, err := config.Render(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scirnap version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SCIRNAP",
				Section: "1",
				Source:  "scirnap " + version.Version,
				Manual:  "scirnap manual",
			}
			if dir == "" {
				return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}
