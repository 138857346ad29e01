package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/palettelab/color-agent/internal/api/middleware"
	"github.com/palettelab/color-agent/internal/jsonx"
	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/parser"
	"github.com/palettelab/color-agent/internal/resolver"
	"github.com/rs/zerolog"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	resolver *resolver.Resolver
	logger   *zerolog.Logger
}

func NewHandler(res *resolver.Resolver, logger *zerolog.Logger) *Handler {
	return &Handler{
		resolver: res,
		logger:   logger,
	}
}

// POST /api/v1/colors
// Body: ColorRequest with exactly one of colorDescription, colorDescriptions,
// suggestionQuery. Single lookup answers a ColorResponse; the other two
// answer a BatchResponse.
func (h *Handler) Colors(req *restful.Request, resp *restful.Response) {
	var colorReq models.ColorRequest
	if err := req.ReadEntity(&colorReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if err := checkShape(colorReq); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()

	switch {
	case colorReq.ColorDescription != "":
		h.logger.Info().Str("description", colorReq.ColorDescription).Msg("single color lookup")

		result, err := h.resolver.ResolveOne(ctx, models.ColorQuery{Phrase: colorReq.ColorDescription})
		if err != nil {
			h.writeResolveError(resp, err)
			return
		}
		resp.WriteHeaderAndEntity(http.StatusOK, result)

	case colorReq.ColorDescriptions != nil:
		h.logger.Info().Int("count", len(colorReq.ColorDescriptions)).Msg("batch color lookup")

		queries := make([]models.ColorQuery, 0, len(colorReq.ColorDescriptions))
		for _, description := range colorReq.ColorDescriptions {
			queries = append(queries, models.ColorQuery{Phrase: description})
		}

		results := h.resolver.ResolveMany(ctx, queries)
		resp.WriteHeaderAndEntity(http.StatusOK, models.BatchResponse{Results: results})

	default:
		h.logger.Info().Str("query", colorReq.SuggestionQuery).Msg("palette suggestion")

		results, err := h.resolver.Suggest(ctx, colorReq.SuggestionQuery)
		if err != nil {
			h.writeResolveError(resp, err)
			return
		}
		resp.WriteHeaderAndEntity(http.StatusOK, models.BatchResponse{Results: results})
	}
}

// POST /api/v1/colors/batch-text
// Body: BatchTextRequest. Runs the split cascade server-side, then a
// batch resolution.
func (h *Handler) BatchText(req *restful.Request, resp *restful.Response) {
	var textReq models.BatchTextRequest
	if err := req.ReadEntity(&textReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	queries := parser.Parse(textReq.RawText)
	if len(queries) == 0 {
		middleware.HandleError(resp, fmt.Errorf("rawText must not be empty"), http.StatusBadRequest)
		return
	}

	h.logger.Info().Int("queries", len(queries)).Msg("batch text lookup")

	results := h.resolver.ResolveMany(req.Request.Context(), queries)
	resp.WriteHeaderAndEntity(http.StatusOK, models.BatchResponse{Results: results})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// checkShape enforces the inbound contract: exactly one of the three
// request fields, and a present batch list must not be empty.
func checkShape(req models.ColorRequest) error {
	present := 0
	if req.ColorDescription != "" {
		present++
	}
	if req.ColorDescriptions != nil {
		present++
	}
	if req.SuggestionQuery != "" {
		present++
	}

	if present == 0 {
		return fmt.Errorf("one of colorDescription, colorDescriptions or suggestionQuery is required")
	}
	if present > 1 {
		return fmt.Errorf("exactly one of colorDescription, colorDescriptions or suggestionQuery must be set")
	}
	if req.ColorDescriptions != nil && len(req.ColorDescriptions) == 0 {
		return fmt.Errorf("colorDescriptions must not be empty")
	}

	return nil
}

func (h *Handler) writeResolveError(resp *restful.Response, err error) {
	var rejected *resolver.RejectedError

	switch {
	case errors.As(err, &rejected):
		// User-facing rejection, distinct from technical failures.
		middleware.HandleError(resp, err, http.StatusUnprocessableEntity)
	case errors.Is(err, jsonx.ErrInvalidFormat):
		// Parse detail stays in the logs; callers only see the category.
		middleware.HandleError(resp, jsonx.ErrInvalidFormat, http.StatusBadGateway)
	case errors.Is(err, resolver.ErrEmptyResponse):
		middleware.HandleError(resp, err, http.StatusBadGateway)
	default:
		middleware.HandleError(resp, err, http.StatusInternalServerError)
	}
}
