package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vrsandeep/mango-downloads/internal/core"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mango-cli",
	Short: "Inspect and repair the manga downloads folder",
	Long:  "Resolve, create and rename download directories of the manga known to the mango database",
}

func init() {
	rootCmd.AddCommand(dirsCmd)
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openApp sets up the core application. The caller must close it.
func openApp() *core.App {
	app, err := core.New()
	cobra.CheckErr(err)
	return app
}

// loadManga resolves a manga id argument to the manga and its source.
func loadManga(app *core.App, arg string) (*models.Manga, *models.Source, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid manga id %q", arg)
	}
	manga, err := store.New(app.DB()).GetMangaByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("manga %d: %w", id, err)
	}
	source, ok := app.Sources().Get(manga.SourceID)
	if !ok {
		return nil, nil, fmt.Errorf("manga %d: %w", id, store.ErrSourceNotFound)
	}
	return manga, source, nil
}
