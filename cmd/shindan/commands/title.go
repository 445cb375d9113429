package commands

import (
	"fmt"

	"github.com/araea/shindan-maker/lib/textutil"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(describeCmd)
}

var titleCmd = &cobra.Command{
	Use:   "title <id>",
	Short: "Prints the title of a shindan without submitting it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		defer client.Close()

		title, err := client.GetTitle(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to fetch title", err)
		}
		fmt.Println(title)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <id>",
	Short: "Prints the title and description of a shindan.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		defer client.Close()

		title, description, err := client.GetTitleWithDescription(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to fetch shindan", err)
		}
		fmt.Println(title)
		fmt.Println()
		fmt.Println(textutil.StripNonPrintable(description))
	},
}
