package v1

import (
	"skill-insight/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterLearners(
	r fiber.Router,
	profileHandler *handler.ProfileHandler,
	skillRecordHandler *handler.SkillRecordHandler,
	academicHandler *handler.AcademicHandler,
) {
	if r == nil {
		return
	}

	if profileHandler != nil {
		profileHandler.RegisterRoutes(r)
	}
	if skillRecordHandler != nil {
		skillRecordHandler.RegisterRoutes(r)
	}
	if academicHandler != nil {
		academicHandler.RegisterRoutes(r)
	}
}
