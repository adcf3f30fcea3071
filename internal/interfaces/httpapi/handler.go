package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/render"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

// TeamDataProvider serves raw upstream payloads for the pass-through routes.
type TeamDataProvider interface {
	FetchScoreboard(ctx context.Context) ([]byte, error)
	FetchStandings(ctx context.Context) ([]byte, error)
}

// ContentProvider serves the curated articles/podcasts payload.
type ContentProvider interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type Handler struct {
	teamData       TeamDataProvider
	content        ContentProvider
	sections       *usecase.SectionRegistry
	refreshService *usecase.RefreshService
	pageTitle      string
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	teamData TeamDataProvider,
	content ContentProvider,
	sections *usecase.SectionRegistry,
	refreshService *usecase.RefreshService,
	pageTitle string,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		teamData:       teamData,
		content:        content,
		sections:       sections,
		refreshService: refreshService,
		pageTitle:      pageTitle,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvents")
	defer span.End()

	raw, err := h.teamData.FetchScoreboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "scoreboard proxy failed", "error", err)
		writeProxyError(ctx, w, err)
		return
	}

	writeRawJSON(w, raw)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	raw, err := h.teamData.FetchStandings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "standings proxy failed", "error", err)
		writeProxyError(ctx, w, err)
		return
	}

	writeRawJSON(w, raw)
}

func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetContent")
	defer span.End()

	raw, err := h.content.Fetch(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "content fetch failed", "error", err)
		writeProxyError(ctx, w, err)
		return
	}

	writeRawJSON(w, raw)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.GetPage")
	defer span.End()

	states := h.sections.Snapshot()
	sections := make([]render.Section, 0, len(states))
	for _, state := range states {
		sections = append(sections, render.Section{
			ID:      state.ID,
			Title:   state.Title,
			Phase:   string(state.Phase),
			HTML:    state.HTML,
			Message: state.Message,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, render.Page(h.pageTitle, sections))
}

func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSections")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.sections.Snapshot())
}

type refreshJobRequest struct {
	Keys []string `json:"keys" validate:"omitempty,dive,oneof=schedule standings articles podcasts"`
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	var req refreshJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, req.Keys)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func writeRawJSON(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
