package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/models"
	"github.com/vrsandeep/mango-downloads/internal/store"
)

const TmpSweepJobID = "tmp-sweep"

// SweepResult summarises one sweep.
type SweepResult struct {
	Checked   int
	Removed   []string
	Unmatched []string
}

// RunTmpSweep removes temporary chapter directories that have not been
// touched for downloads.tmp_max_age hours. Other unmatched directories are
// only reported.
func RunTmpSweep(ctx JobContext) {
	res, err := SweepTmpDirs(ctx)
	if err != nil {
		log.Printf("Temporary download sweep failed: %v", err)
		sendProgress(ctx, fmt.Sprintf("Sweep failed: %v", err), 100, "failed", true)
		return
	}
	for _, path := range res.Unmatched {
		log.Printf("Unmatched download directory kept: %s", path)
	}
	msg := fmt.Sprintf("Checked %d manga, removed %d temporary directories, %d unmatched directories kept.",
		res.Checked, len(res.Removed), len(res.Unmatched))
	log.Println(msg)
	sendProgress(ctx, msg, 100, "completed", true)
}

// SweepTmpDirs does the work of RunTmpSweep and returns what it found.
func SweepTmpDirs(ctx JobContext) (*SweepResult, error) {
	res := &SweepResult{}
	// Without a positive age every download in progress would look stale.
	if ctx.Config().Downloads.TmpMaxAge <= 0 {
		log.Println("Temporary download max age is not positive, sweep is disabled.")
		return res, nil
	}
	maxAge := time.Duration(ctx.Config().Downloads.TmpMaxAge) * time.Hour

	st := store.New(ctx.DB())
	mangaList, err := st.ListAllManga()
	if err != nil {
		return nil, fmt.Errorf("could not list manga: %w", err)
	}
	for i, m := range mangaList {
		source, ok := ctx.Sources().Get(m.SourceID)
		if !ok {
			continue
		}
		chapters, err := st.GetChaptersByMangaID(m.ID)
		if err != nil {
			log.Printf("Could not load chapters of '%s': %v", m.DirTitle(), err)
			continue
		}

		sweepManga(ctx.Downloads(), m, source, chapters, maxAge, res)
		res.Checked++

		progress := float64(i+1) / float64(len(mangaList)) * 100
		sendProgress(ctx, fmt.Sprintf("Checked %s", m.DirTitle()), progress, "running", false)
	}
	return res, nil
}

func sweepManga(p *downloads.Provider, m *models.Manga, source *models.Source, chapters []*models.Chapter, maxAge time.Duration, res *SweepResult) {
	for _, dir := range p.FindUnmatchedChapterDirs(chapters, m, source) {
		if !strings.HasSuffix(dir.Name(), downloads.TmpDirSuffix) {
			res.Unmatched = append(res.Unmatched, dir.Path())
			continue
		}
		info, err := dir.Stat()
		if err != nil || time.Since(info.ModTime()) < maxAge {
			continue
		}
		if err := dir.Remove(); err != nil {
			log.Printf("Could not remove %s: %v", dir.Path(), err)
			continue
		}
		res.Removed = append(res.Removed, dir.Path())
	}
}

func sendProgress(ctx JobContext, message string, progress float64, status string, done bool) {
	hub := ctx.WsHub()
	if hub == nil {
		return
	}
	hub.BroadcastJSON(models.ProgressUpdate{
		JobID:    TmpSweepJobID,
		Message:  message,
		Progress: progress,
		Status:   status,
		Done:     done,
	})
}
