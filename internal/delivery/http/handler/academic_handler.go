package handler

import (
	"skill-insight/internal/delivery/http/dto"
	"skill-insight/internal/pkg/response"
	"skill-insight/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AcademicHandler struct {
	uc usecase.AcademicUsecase
}

func NewAcademicHandler(uc usecase.AcademicUsecase) *AcademicHandler {
	return &AcademicHandler{uc: uc}
}

func (h *AcademicHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/academic")
	grp.Get("/", h.Get)
	grp.Post("/courses", h.AddCourse)
	grp.Put("/courses/:id", h.UpdateCourse)
	grp.Delete("/courses/:id", h.RemoveCourse)
	grp.Post("/recompute", h.Recompute)
}

func (h *AcademicHandler) Get(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	v, err := h.uc.GetRecord(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewAcademicRecordResponse(v))
}

func (h *AcademicHandler) AddCourse(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v, err := h.uc.AddCourse(c.Context(), learnerID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewAcademicRecordResponse(v))
}

func (h *AcademicHandler) UpdateCourse(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	courseID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	v, err := h.uc.UpdateCourse(c.Context(), learnerID, courseID, req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewAcademicRecordResponse(v))
}

func (h *AcademicHandler) RemoveCourse(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	courseID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.uc.RemoveCourse(c.Context(), learnerID, courseID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewAcademicRecordResponse(v))
}

func (h *AcademicHandler) Recompute(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	v, err := h.uc.RecomputeGPA(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewAcademicRecordResponse(v))
}
