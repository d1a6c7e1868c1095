package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ensureCmd = &cobra.Command{
	Use:   "ensure [manga-id]",
	Short: "Create the download directory of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		manga, source, err := loadManga(app, args[0])
		cobra.CheckErr(err)

		dir, err := app.Downloads().MangaDir(manga, source)
		cobra.CheckErr(err)
		fmt.Println(dir.Path())
	},
}
