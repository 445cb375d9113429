package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var imageOut *string

func init() {
	imageOut = imageCmd.Flags().StringP("out", "o", "result.png", "The file to write the screenshot to.")
	rootCmd.AddCommand(imageCmd)
}

var imageCmd = &cobra.Command{
	Use:   "image <id> [input]",
	Short: "Submits an input to a shindan and renders the result to a png.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient()
		defer client.Close()
		client.InitRenderer()

		result, err := client.GetImageResult(cmd.Context(), args[0], inputOrGuest(args))
		if err != nil {
			fatal("failed to render shindan", err)
		}

		err = os.WriteFile(*imageOut, result.Image, 0644)
		if err != nil {
			fatal("failed to write output file", err)
		}
		slog.Info("wrote screenshot", "title", result.Title, "file", *imageOut, "bytes", len(result.Image))
	},
}
