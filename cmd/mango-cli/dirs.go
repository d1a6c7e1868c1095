package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/store"
	"github.com/vrsandeep/mango-downloads/internal/util"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs [manga-id]",
	Short: "Show the download directories of a manga",
	Long:  "List the chapter directories of a manga split into matched, unmatched and temporary entries",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()
		defer app.Close()

		manga, source, err := loadManga(app, args[0])
		cobra.CheckErr(err)
		chapters, err := store.New(app.DB()).GetChaptersByMangaID(manga.ID)
		cobra.CheckErr(err)

		p := app.Downloads()
		dir, ok := p.FindMangaDir(manga, source)
		if !ok {
			fmt.Printf("No download directory for '%s' (expected %s)\n", manga.DirTitle(),
				p.Root().Join(p.SourceDirName(source)).Join(p.MangaDirName(manga)).Path())
			return
		}

		fmt.Printf("%s\n", dir.Path())
		printDirs("Matched", p.FindChapterDirs(chapters, manga, source))
		printDirs("Unmatched", p.FindUnmatchedChapterDirs(chapters, manga, source))
		printDirs("Temporary", p.FindTempChapterDirs(chapters, manga, source))
	},
}

func printDirs(label string, dirs []downloads.Dir) {
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, d.Name())
	}
	util.SortNatural(names)

	fmt.Printf("\n%s (%d)\n", label, len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
}
