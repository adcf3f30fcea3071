package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/sourcegraph/conc"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/cache"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/logging"
)

// Sanitized user-facing failure text, one fixed message per error class.
// Full failure detail stays in the logs.
const (
	msgNetwork       = "No se pudo conectar con el servicio de datos."
	msgUpstream      = "El servicio de datos no está disponible."
	msgFormat        = "El servicio devolvió una respuesta no válida."
	msgProcessing    = "No se pudo procesar la información recibida."
	msgConfiguration = "El servicio no está configurado correctamente."
	msgUnknown       = "Se produjo un error inesperado."
)

// EngineService drives the fetch, classify, transform, cache, render cycle
// for every page section. Run never returns an error and never panics
// outward: each source degrades to its own section's error state.
type EngineService struct {
	cache      *cache.Store
	sections   *SectionRegistry
	httpClient *http.Client
	logger     *logging.Logger
}

func NewEngineService(store *cache.Store, sections *SectionRegistry, httpClient *http.Client, logger *logging.Logger) *EngineService {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EngineService{
		cache:      store,
		sections:   sections,
		httpClient: httpClient,
		logger:     logger,
	}
}

// RunAll starts every source as its own task. Sources share no mutable state;
// completion order carries no meaning.
func (s *EngineService) RunAll(ctx context.Context, sources []Source) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EngineService.RunAll")
	defer span.End()

	var wg conc.WaitGroup
	for _, source := range sources {
		source := source
		wg.Go(func() {
			s.Run(ctx, source)
		})
	}
	wg.Wait()
}

// Run executes one full cycle for a single source.
func (s *EngineService) Run(ctx context.Context, source Source) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EngineService.Run")
	defer span.End()

	if !s.sections.Has(source.SectionID) {
		s.logger.ErrorContext(ctx, "unknown section id, aborting source run",
			"section_id", source.SectionID,
			"cache_key", source.CacheKey,
		)
		return
	}

	s.sections.SetLoading(source.SectionID)

	if cached, ok := s.cache.Get(ctx, source.CacheKey); ok {
		s.sections.SetReady(source.SectionID, cached, true)
		return
	}

	payload, err := s.fetch(ctx, source.URL)
	if err != nil {
		s.fail(ctx, source, err)
		return
	}

	fragment, err := s.runTransform(source, payload)
	if err != nil {
		s.fail(ctx, source, err)
		return
	}

	if fragment.Empty() {
		// Empty results are deliberately not cached: an empty upstream
		// answer is re-fetched on the next run.
		s.sections.SetEmpty(source.SectionID, source.EmptyMessage)
		return
	}

	s.sections.SetReady(source.SectionID, fragment.HTML, false)
	s.cache.Set(ctx, source.CacheKey, fragment.HTML)
}

func (s *EngineService) fetch(ctx context.Context, rawURL string) (map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EngineService.fetch")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrConfiguration, err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	// A missing Content-Type header is as suspect as a wrong one.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "json") {
		return nil, fmt.Errorf("%w: unexpected content type %q", ErrFormat, contentType)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	var payload map[string]any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFormat, err)
	}
	return payload, nil
}

// runTransform shields the engine from misbehaving transforms: panics and
// unclassified errors come back as the processing class.
func (s *EngineService) runTransform(source Source, payload map[string]any) (fragment Fragment, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			fragment = Fragment{}
			err = fmt.Errorf("%w: transform panicked: %v", ErrProcessing, recovered)
		}
	}()

	fragment, err = source.Transform(payload)
	if err != nil && !isClassified(err) {
		err = fmt.Errorf("%w: %v", ErrProcessing, err)
	}
	return fragment, err
}

func (s *EngineService) fail(ctx context.Context, source Source, err error) {
	s.logger.ErrorContext(ctx, "source run failed",
		"section_id", source.SectionID,
		"cache_key", source.CacheKey,
		"error", err,
	)
	s.sections.SetError(source.SectionID, UserMessage(err))
}

func isClassified(err error) bool {
	for _, class := range []error{ErrNetwork, ErrUpstreamStatus, ErrFormat, ErrProcessing, ErrConfiguration} {
		if errors.Is(err, class) {
			return true
		}
	}
	return false
}

// UserMessage maps an error to its fixed sanitized display text.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return msgNetwork
	case errors.Is(err, ErrUpstreamStatus):
		return msgUpstream
	case errors.Is(err, ErrFormat):
		return msgFormat
	case errors.Is(err, ErrProcessing):
		return msgProcessing
	case errors.Is(err, ErrConfiguration):
		return msgConfiguration
	default:
		return msgUnknown
	}
}
