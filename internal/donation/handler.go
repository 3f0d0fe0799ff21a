package donation

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jmcatapang/blood-donation-backend/internal/profile"
	"github.com/jmcatapang/blood-donation-backend/internal/user"
)

var validate = validator.New()

type Handler struct {
	service *Service
}

type createRequest struct {
	RequestType  string `json:"requestType" validate:"required,oneof=donating receiving"`
	BloodType    string `json:"bloodType" validate:"required_if=RequestType receiving,omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Region       string `json:"region" validate:"required_if=RequestType receiving"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
}

type editRequest struct {
	BloodType    *string `json:"bloodType,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Region       *string `json:"region,omitempty"`
	Province     *string `json:"province,omitempty"`
	Municipality *string `json:"municipality,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/requests", h.listOwn)
	app.Post("/api/v1/requests", h.create)
	app.Get("/api/v1/request/:id", h.get)
	app.Put("/api/v1/request/:id", h.edit)
	app.Patch("/api/v1/request/:id", h.edit)
	app.Delete("/api/v1/request/:id", h.delete)
	app.Get("/api/v1/request/:id/matches", h.matches)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/requests", h.listAll)
}

func (h *Handler) create(c *fiber.Ctx) error {
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

	created, err := h.service.Create(userID, CreateInput{
		RequestType:  payload.RequestType,
		BloodType:    payload.BloodType,
		Region:       payload.Region,
		Province:     payload.Province,
		Municipality: payload.Municipality,
	})
	if err != nil {
		switch err {
		case profile.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "profile not found"})
		case ErrNotEligible:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		case ErrBadRequestType, profile.ErrInvalidBloodType:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) get(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	request, err := h.service.Get(userID, user.IsAdminFromCtx(c), requestID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "request not found"})
	}

	return c.JSON(request)
}

func (h *Handler) edit(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	payload := new(editRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Edit(userID, requestID, EditInput{
		BloodType:    payload.BloodType,
		Region:       payload.Region,
		Province:     payload.Province,
		Municipality: payload.Municipality,
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "request not found"})
		case ErrImmutableRequest:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		case profile.ErrInvalidBloodType:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	if err := h.service.Delete(userID, requestID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "request not found"})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) listOwn(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requests, err := h.service.ListOwn(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(requests)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
	}

	requests, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(requests)
}

func (h *Handler) matches(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	matches, err := h.service.Matches(userID, user.IsAdminFromCtx(c), requestID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "request not found"})
		case ErrNotReceiving:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(matches)
}
