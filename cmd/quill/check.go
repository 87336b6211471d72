package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diag"
	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [story.tw|story.html|dir]",
	Short: "Check a story or a directory of sources",
	Long: `Check runs the full front end over a story container or every
twee file under a directory, then the cross-passage analyses. With no
argument the source directory from story.toml is used.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = all CPUs)")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the passage cache")
	checkCmd.Flags().String("ui", "auto", "interactive progress for directory checks (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target, err := checkTarget(args)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return checkDir(cmd, target)
	}
	return checkStory(cmd, target)
}

// checkTarget resolves the explicit argument or falls back to the
// manifest's source directory.
func checkTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	path, ok, err := project.FindStoryToml(".")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no target given and no story.toml found")
	}
	manifest, err := project.LoadManifest(path)
	if err != nil {
		return "", err
	}
	return manifest.SourceDir(), nil
}

func checkStory(cmd *cobra.Command, path string) error {
	opts := driver.CheckOptions{MaxDiagnostics: maxDiagnostics(cmd)}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		if cache, err := driver.OpenDiskCache("quill"); err == nil {
			opts.Cache = cache
		}
	}

	result, err := driver.CheckFile(path, opts)
	if err != nil {
		return err
	}

	pretty := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
		Context:   true,
	}
	errs, warns := 0, 0
	for _, rep := range result.Reports {
		diagfmt.Pretty(os.Stderr, rep.Bag, result.FileSet, pretty)
		errs += countErrors(rep.Bag)
		warns += countWarnings(rep.Bag)
	}
	diagfmt.Pretty(os.Stderr, result.Project, result.FileSet, pretty)
	errs += countErrors(result.Project)
	warns += countWarnings(result.Project)

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "%d passages checked: %d errors, %d warnings\n",
			len(result.Reports), errs, warns)
	}
	// Findings in the story are the command's output, not its failure.
	return nil
}

func checkDir(cmd *cobra.Command, dir string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.ParseDirOptions{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics(cmd),
	}

	fs, results, err := runDirCheck(cmd, dir, opts, shouldUseTUI(mode))
	if err != nil {
		return err
	}

	pretty := diagfmt.PrettyOpts{
		Color:   useColor(cmd, os.Stderr),
		Context: true,
	}
	errs, warns := 0, 0
	for _, res := range results {
		if res.Builder == nil {
			// Load failure: the bag has no spans to resolve.
			for _, d := range res.Bag.Items() {
				fmt.Fprintf(os.Stderr, "%s: %s %s: %s\n",
					res.Path, d.Severity, d.Code.ID(), d.Message)
			}
		} else {
			diagfmt.Pretty(os.Stderr, res.Bag, fs, pretty)
		}
		errs += countErrors(res.Bag)
		warns += countWarnings(res.Bag)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "%d files checked: %d errors, %d warnings\n",
			len(results), errs, warns)
	}
	return nil
}

func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

func countWarnings(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			n++
		}
	}
	return n
}
