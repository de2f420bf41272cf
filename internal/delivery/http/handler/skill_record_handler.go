package handler

import (
	"skill-insight/internal/delivery/http/dto"
	"skill-insight/internal/pkg/response"
	"skill-insight/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillRecordHandler struct {
	uc usecase.SkillRecordUsecase
}

func NewSkillRecordHandler(uc usecase.SkillRecordUsecase) *SkillRecordHandler {
	return &SkillRecordHandler{uc: uc}
}

func (h *SkillRecordHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Upsert)
	grp.Patch("/:skill_id", h.UpdateProficiency)
	grp.Delete("/:skill_id", h.Delete)
	grp.Post("/:skill_id/evidence", h.AddEvidence)
	grp.Put("/:skill_id/goal", h.SetGoal)
	grp.Delete("/:skill_id/goal", h.ClearGoal)
}

func (h *SkillRecordHandler) List(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), learnerID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, response.List(dto.NewSkillRecordResponses(items)))
}

func (h *SkillRecordHandler) Upsert(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	var req dto.UpsertSkillRecordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	it, err := h.uc.Upsert(c.Context(), learnerID, usecase.UpsertSkillRecordInput{
		SkillID: req.SkillID,
		Level:   req.Level,
		Score:   req.Score,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSkillRecordResponse(it))
}

func (h *SkillRecordHandler) UpdateProficiency(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}
	var req dto.UpdateProficiencyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	it, err := h.uc.UpdateProficiency(c.Context(), learnerID, skillID, usecase.UpdateProficiencyInput{
		Level: req.Level,
		Score: req.Score,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSkillRecordResponse(it))
}

func (h *SkillRecordHandler) AddEvidence(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}
	var req dto.AddEvidenceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	it, err := h.uc.AddEvidence(c.Context(), learnerID, skillID, usecase.AddEvidenceInput{
		Type:   req.Type,
		ItemID: req.ItemID,
		Date:   req.Date,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewSkillRecordResponse(it))
}

func (h *SkillRecordHandler) SetGoal(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}
	var req dto.SetGoalRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	it, err := h.uc.SetGoal(c.Context(), learnerID, skillID, usecase.SetGoalInput{
		TargetLevel: req.TargetLevel,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSkillRecordResponse(it))
}

func (h *SkillRecordHandler) ClearGoal(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}

	it, err := h.uc.ClearGoal(c.Context(), learnerID, skillID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewSkillRecordResponse(it))
}

func (h *SkillRecordHandler) Delete(c fiber.Ctx) error {
	learnerID, err := currentLearner(c)
	if err != nil {
		return err
	}
	skillID, err := pathUUID(c, "skill_id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), learnerID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}
