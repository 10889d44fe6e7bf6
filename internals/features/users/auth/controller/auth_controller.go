package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"attendance_backend/internals/features/users/auth/dto"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	"attendance_backend/internals/features/users/auth/service"
	userModel "attendance_backend/internals/features/users/user/model"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/logger"
)

var validate = validator.New()

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
	JWTTTL    time.Duration

	log zerolog.Logger
}

func NewAuthController(db *gorm.DB, secret string, ttl time.Duration) *AuthController {
	return &AuthController{
		DB:        db,
		JWTSecret: secret,
		JWTTTL:    ttl,
		log:       logger.WithComponent("auth.controller"),
	}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.Register(c.UserContext(), ac.DB, req)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		var ve *userModel.ValidationError
		if errors.As(err, &ve) {
			return helper.JsonError(c, fiber.StatusBadRequest, ve.Msg)
		}
		ac.log.Error().Err(err).Msg("register failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}

	return helper.JsonMessage(c, fiber.StatusCreated, "User registered", fiber.Map{"user": dto.FromModel(user)})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, err := service.Login(c.UserContext(), ac.DB, ac.JWTSecret, ac.JWTTTL, req)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInactiveAccount):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		ac.log.Error().Err(err).Msg("login failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, resp)
}

// GET /api/auth/users (admin)
func (ac *AuthController) ListUsers(c *fiber.Ctx) error {
	users, err := authRepo.ListNonAdminUsers(c.UserContext(), ac.DB)
	if err != nil {
		ac.log.Error().Err(err).Msg("list users failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, dto.ToListItems(users))
}
