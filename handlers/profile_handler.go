package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/proffinder/backend/middleware"
	"github.com/proffinder/backend/models"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	DB *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

// GetStudentProfile returns the authenticated student's own record,
// password excluded.
func (h *ProfileHandler) GetStudentProfile(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	var student models.User
	if err := h.DB.Where("id = ?", principal.ID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Student not found"})
		}
		return serverError(c, err)
	}

	return c.JSON(toUserResponse(&student))
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,url"`
}

// UpdateAvatar stores the URL of an uploaded avatar image on the
// authenticated user. The upload itself goes straight to Cloudinary
// using a signature from the upload handler.
func (h *ProfileHandler) UpdateAvatar(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authorized"})
	}

	var req UpdateAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var user models.User
	if err := h.DB.Where("id = ?", principal.ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return serverError(c, err)
	}

	user.Avatar = req.Avatar
	if err := h.DB.Save(&user).Error; err != nil {
		return serverError(c, err)
	}

	return c.JSON(toUserResponse(&user))
}
