package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename [source-id] [from] [to]",
	Short: "Rename a manga download directory",
	Long:  "Move the download directory of a manga from one title to another. Missing directories are left alone.",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		sourceID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("invalid source id %q", args[0]))
		}

		app := openApp()
		defer app.Close()

		app.Downloads().RenameMangaDir(args[1], args[2], sourceID)
	},
}
