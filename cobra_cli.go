package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

// Version is reported by --version.
var Version = "dev"

const rootLongDesc = `
docgen assembles a Markdown document from a template and the leading doc
comments of source files.

Every template line holding an @parse(path) marker is replaced by the line
with the marker swapped for the file name, followed by the file's leading
"/*" comment block. File names ending in the link extension are rewritten
into anchor links ([Foo.swift](#fooswift)).

With --glob the marker may hold * wildcards and one group is emitted per
matching file.
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "docgen [flags] <template> <output>",
		Short:         "Inline source doc comments into a Markdown template",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.BoolVarP(&app.opts.glob, "glob", "g", false, "expand * wildcards in marker paths")
	flags.StringVar(&app.opts.extension, "ext", defaultExtension, "file extension rewritten into anchor links")
	flags.StringVarP(&app.opts.dir, "dir", "C", "", "resolve marker paths relative to `directory`")
	flags.StringVar(&app.opts.configPath, "config", "", "read defaults from a YAML `file`")
	flags.BoolVar(&app.opts.check, "check", false, "fail if the output file is out of date instead of writing it")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log skipped sources and run statistics")
	app.changed = func(name string) bool { return cmd.Flags().Changed(name) }

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, args[0], args[1])
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for docgen.

The output should be evaluated by your shell. For example:

  # bash
  docgen completion bash > /usr/local/etc/bash_completion.d/docgen

  # zsh
  docgen completion zsh > "${fpath[1]}/_docgen"

  # fish
  docgen completion fish | source

  # PowerShell
  docgen completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  docgen gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
