package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/similar"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar [manga-id]",
	Short: "Show manga similar to a manga",
	Long:  "Look a manga up in the public similar manga feed by the id at the end of its URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		manga, _, err := loadManga(app, args[0])
		cobra.CheckErr(err)
		feedID := downloads.ChapterIDFromURL(manga.URL)
		if feedID == "" {
			cobra.CheckErr(fmt.Errorf("manga '%s' has no URL to look up", manga.DirTitle()))
		}

		fmt.Printf("🔍 Fetching similar manga feed...\n")
		entries, err := similar.New(app.Config().Similar.BaseURL).FetchSimilar(cmd.Context())
		cobra.CheckErr(err)

		entry, ok := entries[feedID]
		if !ok || len(entry.IDs) == 0 {
			fmt.Printf("No similar manga for '%s'.\n", manga.DirTitle())
			return
		}

		fmt.Printf("Similar to '%s':\n", manga.DirTitle())
		for i := range entry.IDs {
			if i >= similarLimit {
				break
			}
			title, score := "", 0.0
			if i < len(entry.Titles) {
				title = entry.Titles[i]
			}
			if i < len(entry.Scores) {
				score = entry.Scores[i]
			}
			fmt.Printf("  %5.2f  %s (%s)\n", score, title, entry.IDs[i])
		}
	},
}

func init() {
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 10, "maximum number of results")
}
