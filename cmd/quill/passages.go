package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quill/internal/driver"
)

var passagesCmd = &cobra.Command{
	Use:   "passages [flags] story.tw",
	Short: "List the passages of a story container",
	Args:  cobra.ExactArgs(1),
	RunE:  runPassages,
}

func init() {
	passagesCmd.Flags().Bool("links", false, "show outgoing links per passage")
}

func runPassages(cmd *cobra.Command, args []string) error {
	showLinks, _ := cmd.Flags().GetBool("links")

	if showLinks {
		result, err := driver.CheckFile(args[0], driver.CheckOptions{MaxDiagnostics: maxDiagnostics(cmd)})
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, rep := range result.Reports {
			targets := make([]string, 0, len(rep.Links))
			for _, l := range rep.Links {
				targets = append(targets, l.Target)
			}
			fmt.Fprintf(w, "%s\t%s\n", rep.Name, strings.Join(targets, ", "))
		}
		return w.Flush()
	}

	st, _, _, err := driver.LoadStory(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range st.Passages {
		marker := " "
		if p.Name == st.Start {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\t[%s]\n", marker, p.Name, strings.Join(p.Tags, " "))
	}
	return w.Flush()
}
