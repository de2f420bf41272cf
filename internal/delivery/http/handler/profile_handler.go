package handler

import (
	"skill-insight/internal/delivery/http/dto"
	"skill-insight/internal/pkg/response"
	"skill-insight/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.LearnerUsecase
}

func NewProfileHandler(uc usecase.LearnerUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Get)
	r.Patch("/me", h.Update)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}

	l, err := h.uc.GetProfile(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewLearnerResponse(l))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	l, err := h.uc.UpdateProfile(c.Context(), learnerID, usecase.UpdateProfileInput{
		FullName:       req.FullName,
		Specialization: req.Specialization,
		CareerGoal:     req.CareerGoal,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewLearnerResponse(l))
}
