package extract

import (
	"log/slog"
	"runtime"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/pkg/fn"
)

// maxWorkers caps the extraction pool regardless of available parallelism.
const maxWorkers = 8

// Batch extracts every document in parallel with a bounded worker pool.
// Each worker owns one document exclusively; a document that panics or
// produces no text degrades to an empty section list under its name, and
// never affects the rest of the batch.
func Batch(docs []domain.DocumentText, logger *slog.Logger) map[string][]domain.Section {
	if logger == nil {
		logger = slog.Default()
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > maxWorkers {
		workers = maxWorkers
	}

	results := fn.ParMap(docs, workers, func(doc domain.DocumentText) (sections []domain.Section) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("extract: document failed", "source", doc.Name, "panic", r)
				sections = nil
			}
		}()
		sections = Sections(doc)
		if len(sections) == 0 {
			logger.Warn("extract: no sections", "source", doc.Name)
		}
		return sections
	})

	out := make(map[string][]domain.Section, len(docs))
	for i, doc := range docs {
		out[doc.Name] = results[i]
	}
	return out
}
