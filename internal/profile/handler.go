package profile

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jmcatapang/blood-donation-backend/internal/user"
)

var validate = validator.New()

type Handler struct {
	service *Service
}

type createRequest struct {
	FirstName        string  `json:"firstName" validate:"required"`
	LastName         string  `json:"lastName" validate:"required"`
	Weight           float64 `json:"weight" validate:"gt=0"`
	Height           float64 `json:"height" validate:"gt=0"`
	Region           string  `json:"region" validate:"required"`
	Province         string  `json:"province" validate:"required"`
	Municipality     string  `json:"municipality" validate:"required"`
	BloodType        string  `json:"bloodType" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Availability     bool    `json:"availability"`
	LastDonationDate *string `json:"lastDonationDate,omitempty"`
}

type updateRequest struct {
	FirstName        *string  `json:"firstName,omitempty"`
	LastName         *string  `json:"lastName,omitempty"`
	Weight           *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height           *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Region           *string  `json:"region,omitempty"`
	Province         *string  `json:"province,omitempty"`
	Municipality     *string  `json:"municipality,omitempty"`
	BloodType        *string  `json:"bloodType,omitempty"`
	Availability     *bool    `json:"availability,omitempty"`
	LastDonationDate *string  `json:"lastDonationDate,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/profile", h.createProfile)
	app.Get("/api/v1/profile", h.getProfile)
	// both PUT and PATCH accept partial payloads
	app.Put("/api/v1/profile", h.updateProfile)
	app.Patch("/api/v1/profile", h.updateProfile)
}

func (h *Handler) createProfile(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(Profile{
		UserID:           userID,
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Weight:           payload.Weight,
		Height:           payload.Height,
		Region:           payload.Region,
		Province:         payload.Province,
		Municipality:     payload.Municipality,
		BloodType:        payload.BloodType,
		Availability:     payload.Availability,
		LastDonationDate: payload.LastDonationDate,
	})
	if err != nil {
		switch err {
		case ErrProfileExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "profile already exists"})
		case ErrInvalidBloodType, ErrInvalidDate:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// getProfile returns the caller's own profile. A 404 here tells the client
// the profile-creation step is still pending.
func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	profile, err := h.service.GetByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
	}

	return c.JSON(profile)
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(userID, UpdateInput{
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Weight:           payload.Weight,
		Height:           payload.Height,
		Region:           payload.Region,
		Province:         payload.Province,
		Municipality:     payload.Municipality,
		BloodType:        payload.BloodType,
		Availability:     payload.Availability,
		LastDonationDate: payload.LastDonationDate,
	})
	if err != nil {
		var cooldown *CooldownError
		switch {
		case errors.As(err, &cooldown):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message":       cooldown.Error(),
				"remainingDays": cooldown.RemainingDays,
			})
		case err == ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
		case err == ErrInvalidDate:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}
