package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proffinder/backend/middleware"
	"github.com/proffinder/backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeacherHandler struct {
	DB *gorm.DB
}

func NewTeacherHandler(db *gorm.DB) *TeacherHandler {
	return &TeacherHandler{DB: db}
}

type CreateProfileRequest struct {
	Subjects     []string `json:"subjects"`
	Bio          string   `json:"bio"`
	PricePerHour float64  `json:"price_per_hour"`
}

type RateTeacherRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// TeacherFilter holds the recognized listing filters. All are optional
// and conjunctive.
type TeacherFilter struct {
	Subject  string
	MinPrice *float64
	MaxPrice *float64
	Name     string
}

func (h *TeacherHandler) TestRoute(c *fiber.Ctx) error {
	return c.SendString("Teachers route working!")
}

func (h *TeacherHandler) CreateProfile(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || principal.Role != models.RoleTeacher {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only teachers can create profiles"})
	}

	var req CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	var count int64
	if err := h.DB.Model(&models.TeacherProfile{}).Where("user_id = ?", principal.ID).Count(&count).Error; err != nil {
		return serverError(c, err)
	}
	if count > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Profile already exists"})
	}

	profile := models.TeacherProfile{
		UserID:       principal.ID,
		Subjects:     datatypes.NewJSONSlice(req.Subjects),
		Bio:          req.Bio,
		PricePerHour: req.PricePerHour,
		Ratings:      []models.Rating{},
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		// The unique index on user_id closes the pre-check race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Profile already exists"})
		}
		return serverError(c, err)
	}

	if err := h.DB.Preload("User").First(&profile, "id = ?", profile.ID).Error; err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Profile created",
		"profile": profile,
	})
}

// ParseTeacherFilter reads the listing filters from the query string.
// Malformed price bounds are ignored rather than rejected.
func ParseTeacherFilter(c *fiber.Ctx) TeacherFilter {
	filter := TeacherFilter{
		Subject: c.Query("subject"),
		Name:    c.Query("name"),
	}
	if v := c.Query("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	return filter
}

func (h *TeacherHandler) ListTeachers(c *fiber.Ctx) error {
	filter := ParseTeacherFilter(c)

	query := h.DB.Model(&models.TeacherProfile{}).
		Preload("User").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at asc")
		})

	if filter.Subject != "" {
		// jsonb containment: exact membership in the subjects array.
		needle, err := json.Marshal([]string{filter.Subject})
		if err != nil {
			return serverError(c, err)
		}
		query = query.Where("subjects @> ?", datatypes.JSON(needle))
	}
	if filter.MinPrice != nil {
		query = query.Where("price_per_hour >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_hour <= ?", *filter.MaxPrice)
	}
	if filter.Name != "" {
		query = query.
			Select("teacher_profiles.*").
			Joins("JOIN users ON users.id = teacher_profiles.user_id").
			Where("users.name ILIKE ?", "%"+filter.Name+"%")
	}

	teachers := []models.TeacherProfile{}
	if err := query.Find(&teachers).Error; err != nil {
		return serverError(c, err)
	}

	return c.JSON(teachers)
}

func (h *TeacherHandler) GetTeacherByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid teacher ID"})
	}

	var profile models.TeacherProfile
	err = h.DB.Preload("User").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at asc")
		}).
		First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Teacher not found"})
		}
		return serverError(c, err)
	}

	return c.JSON(profile)
}

// RateTeacher appends a rating for the profile. Ratings live in their
// own table, so the append is a single INSERT and concurrent raters
// cannot clobber each other. The same student may rate twice.
func (h *TeacherHandler) RateTeacher(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || principal.Role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Only students can rate teachers"})
	}

	var req RateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Rating must be between 1 and 5"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid teacher ID"})
	}

	var profile models.TeacherProfile
	if err := h.DB.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Teacher not found"})
		}
		return serverError(c, err)
	}

	rating := models.Rating{
		TeacherProfileID: profile.ID,
		StudentID:        principal.ID,
		Rating:           *req.Rating,
		Comment:          req.Comment,
	}
	if err := h.DB.Create(&rating).Error; err != nil {
		return serverError(c, err)
	}

	ratings := []models.Rating{}
	if err := h.DB.Where("teacher_profile_id = ?", profile.ID).Order("created_at asc").Find(&ratings).Error; err != nil {
		return serverError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Rating added", "ratings": ratings})
}
