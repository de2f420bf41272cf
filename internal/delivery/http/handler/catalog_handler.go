package handler

import (
	"skill-insight/internal/delivery/http/dto"
	"skill-insight/internal/pkg/response"
	"skill-insight/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.ListSkills)
	r.Get("/courses", h.ListCourses)
	r.Get("/career-paths", h.ListCareerPaths)
	r.Get("/career-paths/:id", h.GetCareerPath)
}

func (h *CatalogHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/skills", h.CreateSkill)
	r.Post("/career-paths", h.CreateCareerPath)
	r.Post("/career-paths/:id/skills", h.AddRequiredSkill)
	r.Delete("/career-paths/:id/skills/:skill_id", h.RemoveRequiredSkill)
}

func (h *CatalogHandler) ListSkills(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.List(items))
}

func (h *CatalogHandler) ListCourses(c fiber.Ctx) error {
	items, err := h.uc.ListCourses(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.List(items))
}

func (h *CatalogHandler) ListCareerPaths(c fiber.Ctx) error {
	items, err := h.uc.ListCareerPaths(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.List(items))
}

func (h *CatalogHandler) GetCareerPath(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.GetCareerPath(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, p)
}

func (h *CatalogHandler) CreateSkill(c fiber.Ctx) error {
	var req dto.CreateSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	s, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:      req.Name,
		Category:  req.Category,
		Specialty: req.Specialty,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, s)
}

func (h *CatalogHandler) CreateCareerPath(c fiber.Ctx) error {
	var req dto.CreateCareerPathRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.uc.CreateCareerPath(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, p)
}

func (h *CatalogHandler) AddRequiredSkill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RequiredSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	p, err := h.uc.AddRequiredSkill(c.Context(), id, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, p)
}

func (h *CatalogHandler) RemoveRequiredSkill(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}
	p, err := h.uc.RemoveRequiredSkill(c.Context(), id, skillID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, p)
}
