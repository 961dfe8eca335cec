package service

import (
	"context"
	"runtime"
	"strings"

	"github.com/glamlens/glamlens/internal/analyzer"
	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/pkg/models"
)

// BatchItem is the outcome for one source of a batch
type BatchItem struct {
	Index  int
	Source string
	Result *models.AnalysisResult
	Err    error
}

// AnalyzeBatch analyzes sources concurrently on a bounded worker pool.
// Items are returned in input order; onDone, if set, is called as each item
// finishes and may be called from several goroutines. A source whose job
// panics is reported as an internal error.
func (s *toneAnalysisService) AnalyzeBatch(ctx context.Context, sources []string, options analyzer.AnalysisOptions, onDone func(BatchItem)) []BatchItem {
	items := make([]BatchItem, len(sources))
	if len(sources) == 0 {
		return items
	}

	workers := s.maxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(sources))
	pool := analyzer.NewWorkerPool(workers)
	pool.Start()
	defer pool.Close()

	for i, source := range sources {
		i, source := i, source
		pool.Submit(func() {
			item := BatchItem{Index: i, Source: source, Err: apperrors.NewInternalError("analysis aborted", nil)}
			defer func() {
				items[i] = item
				if onDone != nil {
					onDone(item)
				}
			}()

			if err := ctx.Err(); err != nil {
				item.Err = asAppError(err, "batch cancelled")
			} else if strings.Contains(source, "://") {
				item.Result, item.Err = s.AnalyzeURL(ctx, source, options)
			} else {
				item.Result, item.Err = s.AnalyzeFile(ctx, source, options)
			}
		})
	}
	pool.Wait()
	return items
}
