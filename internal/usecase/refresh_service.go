package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/cache"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/logging"
)

const (
	refreshStatusRefreshed = "refreshed"
	refreshStatusUnknown   = "unknown"
)

type RefreshResult struct {
	TaskCount   int                 `json:"task_count"`
	Tasks       []RefreshTaskResult `json:"tasks"`
	WorkerCount int                 `json:"worker_count"`
}

type RefreshTaskResult struct {
	Key        string `json:"key"`
	SectionID  string `json:"section_id,omitempty"`
	Status     string `json:"status"`
	Phase      string `json:"phase,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// RefreshService is the explicit cache invalidation hook. The fragment cache
// never expires on its own; this service deletes the chosen keys and re-runs
// their sources through a bounded worker pool.
type RefreshService struct {
	engine      *EngineService
	cache       *cache.Store
	sections    *SectionRegistry
	sourceByKey map[string]Source
	maxWorkers  int
	logger      *logging.Logger
}

func NewRefreshService(engine *EngineService, store *cache.Store, sections *SectionRegistry, sources []Source, maxWorkers int, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	byKey := make(map[string]Source, len(sources))
	for _, source := range sources {
		byKey[source.CacheKey] = source
	}

	return &RefreshService{
		engine:      engine,
		cache:       store,
		sections:    sections,
		sourceByKey: byKey,
		maxWorkers:  maxWorkers,
		logger:      logger,
	}
}

// Keys returns the refreshable source keys in stable order.
func (s *RefreshService) Keys() []string {
	keys := make([]string, 0, len(s.sourceByKey))
	for key := range s.sourceByKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Refresh deletes each requested key and re-runs its source. An empty key
// list refreshes every source. Unknown keys are reported per-row, not fatal.
func (s *RefreshService) Refresh(ctx context.Context, keys []string) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	if len(keys) == 0 {
		keys = s.Keys()
	}

	workerCount := s.maxWorkers
	if workerCount > len(keys) {
		workerCount = len(keys)
	}

	result := RefreshResult{
		TaskCount:   len(keys),
		WorkerCount: workerCount,
	}

	results := make(chan RefreshTaskResult, len(keys))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, key := range keys {
		key := strings.TrimSpace(key)
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{Key: key}

			source, ok := s.sourceByKey[key]
			if !ok {
				row.Status = refreshStatusUnknown
				row.DurationMs = time.Since(start).Milliseconds()
				results <- row
				return
			}

			s.cache.Delete(ctx, key)
			s.engine.Run(ctx, source)

			row.Status = refreshStatusRefreshed
			row.SectionID = source.SectionID
			row.Phase = string(s.sectionPhase(source.SectionID))
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].Key < result.Tasks[j].Key
	})

	s.logger.InfoContext(ctx, "refresh completed",
		"task_count", result.TaskCount,
		"worker_count", result.WorkerCount,
	)
	return result, nil
}

func (s *RefreshService) sectionPhase(sectionID string) Phase {
	for _, state := range s.sections.Snapshot() {
		if state.ID == sectionID {
			return state.Phase
		}
	}
	return ""
}
