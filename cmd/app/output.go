package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"trackersync/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printStories(w io.Writer, infos []domain.StoryInfo) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tKIND\tSTATE\tOWNER\tPULL\tNAME")
	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			info.ID, info.Kind, info.State, orDash(info.Owner), pullRef(info.PullNumber), info.Name)
	}
	_ = tw.Flush()
}

func printPulls(w io.Writer, pulls []domain.PullRequest) {
	tw := newTable(w)
	fmt.Fprintln(tw, "NUMBER\tSTATE\tMERGED\tTITLE")
	for _, pr := range pulls {
		fmt.Fprintf(tw, "#%d\t%s\t%t\t%s\n", pr.Number, pr.State, pr.Merged, pr.Title)
	}
	_ = tw.Flush()
}

func printPass(w io.Writer, result domain.PassResult) {
	header := fmt.Sprintf("%s pass", result.Kind)
	if result.PullNumber != nil {
		header += " for " + pullRef(result.PullNumber)
	}
	fmt.Fprintf(w, "%s: scanned %d, delivered %d, failed %d\n",
		header, result.Scanned, len(result.Delivered), len(result.Failures))
	if result.Interrupted {
		fmt.Fprintln(w, "interrupted before every story was processed")
	}

	if len(result.Delivered) > 0 {
		fmt.Fprintln(w)
		printStories(w, result.Delivered)
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(w)
		tw := newTable(w)
		fmt.Fprintln(tw, "STORY\tSTAGE\tERROR")
		for _, f := range result.Failures {
			story := "-"
			if f.StoryID != 0 {
				story = strconv.FormatInt(f.StoryID, 10)
			}
			msg := ""
			if f.Err != nil {
				msg = f.Err.Error()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", story, f.Stage, msg)
		}
		_ = tw.Flush()
	}
}

func pullRef(n *int) string {
	if n == nil {
		return "-"
	}
	return "#" + strconv.Itoa(*n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
