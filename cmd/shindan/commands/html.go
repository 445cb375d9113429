package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var htmlOut *string

func init() {
	htmlOut = htmlCmd.Flags().StringP("out", "o", "", "Write the document to a file instead of stdout.")
	rootCmd.AddCommand(htmlCmd)
}

var htmlCmd = &cobra.Command{
	Use:   "html <id> [input]",
	Short: "Submits an input to a shindan and prints a standalone html document of the result.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		defer client.Close()

		html, err := client.GetHTML(cmd.Context(), args[0], inputOrGuest(args))
		if err != nil {
			fatal("failed to submit shindan", err)
		}

		if *htmlOut == "" {
			fmt.Println(html)
			return
		}
		err = os.WriteFile(*htmlOut, []byte(html), 0644)
		if err != nil {
			fatal("failed to write output file", err)
		}
	},
}
