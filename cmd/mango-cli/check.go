package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vrsandeep/mango-downloads/internal/config"
	"github.com/vrsandeep/mango-downloads/internal/util"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured downloads path is usable",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		cobra.CheckErr(err)

		if err := util.ValidateDownloadsPath(afero.NewOsFs(), cfg.Downloads.Path); err != nil {
			cobra.CheckErr(fmt.Errorf("downloads path %s: %w", cfg.Downloads.Path, err))
		}
		fmt.Printf("✅ Downloads path %s is usable\n", cfg.Downloads.Path)
	},
}
