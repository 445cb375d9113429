package commands

import (
	"os"

	"github.com/araea/shindan-maker/lib/shindan"
	"github.com/araea/shindan-maker/lib/textutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(segmentsCmd)
}

var segmentsCmd = &cobra.Command{
	Use:   "segments <id> [input]",
	Short: "Submits an input to a shindan and prints the parsed result segments.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		defer client.Close()

		result, err := client.GetTextResult(cmd.Context(), args[0], inputOrGuest(args))
		if err != nil {
			fatal("failed to submit shindan", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle(result.Title)
		t.AppendHeader(table.Row{"#", "Kind", "Content"})

		for i, seg := range result.Segments {
			content := seg.Content()
			if seg.Kind == shindan.SegmentText {
				content = textutil.CollapseWhitespace(content)
			}
			t.AppendRow(table.Row{i + 1, string(seg.Kind), content})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
