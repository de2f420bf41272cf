package handler

import (
	"strconv"
	"strings"

	"skill-insight/internal/delivery/http/dto"
	"skill-insight/internal/delivery/http/middleware"
	"skill-insight/internal/domain/analytics"
	"skill-insight/internal/pkg/response"
	"skill-insight/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/analytics")
	grp.Get("/progress", h.Progress)
	grp.Get("/timeline", h.Timeline)
	grp.Get("/readiness", h.ReadinessAll)
	grp.Get("/readiness/:career_path_id", h.Readiness)
	grp.Get("/recommendations", h.Recommendations)
}

func (h *AnalyticsHandler) Progress(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Progress(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *AnalyticsHandler) Timeline(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Timeline(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, out)
}

func (h *AnalyticsHandler) Readiness(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	pathID, err := pathUUID(c, "career_path_id")
	if err != nil {
		return err
	}
	out, err := h.uc.Readiness(c.Context(), learnerID, pathID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewReadinessResponse(out))
}

func (h *AnalyticsHandler) ReadinessAll(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ReadinessAll(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.List(dto.NewReadinessResponses(out)))
}

func (h *AnalyticsHandler) Recommendations(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	f, err := parseFilters(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Recommendations(c.Context(), learnerID, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, out)
}

// parseFilters reads categories (comma separated), specialty, min_score,
// max_score and skill_level from the query string.
func parseFilters(c fiber.Ctx) (analytics.Filters, error) {
	f := analytics.Filters{
		Specialty:  strings.TrimSpace(c.Query("specialty")),
		SkillLevel: strings.TrimSpace(c.Query("skill_level")),
	}

	for _, cat := range strings.Split(c.Query("categories"), ",") {
		if cat = strings.TrimSpace(cat); cat != "" {
			f.Categories = append(f.Categories, cat)
		}
	}

	var err error
	if f.MinScore, err = optionalInt(c, "min_score"); err != nil {
		return analytics.Filters{}, err
	}
	if f.MaxScore, err = optionalInt(c, "max_score"); err != nil {
		return analytics.Filters{}, err
	}
	return f, nil
}

func optionalInt(c fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return &n, nil
}
