// file: internals/features/attendance/attendances/controller/attendance_controller.go
package controller

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/features/attendance/attendances/dto"
	attRepo "attendance_backend/internals/features/attendance/attendances/repository"
	"attendance_backend/internals/features/attendance/attendances/service"
	retService "attendance_backend/internals/features/attendance/retention/service"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/dbtime"
	"attendance_backend/internals/helpers/logger"
	authMiddleware "attendance_backend/internals/middlewares/auth"
)

// Retention: purge oportunistik sebelum listing admin
type Retention interface {
	RunMonthlyCleanup(ctx context.Context) (retService.Result, error)
}

type AttendanceController struct {
	Service       *service.AttendanceService
	Repo          *attRepo.AttendanceRepository
	Cal           *dbtime.Calendar
	Retention     Retention
	MaxPhotoBytes int64

	log zerolog.Logger
}

func NewAttendanceController(
	svc *service.AttendanceService,
	repo *attRepo.AttendanceRepository,
	cal *dbtime.Calendar,
	retention Retention,
	maxPhotoBytes int64,
) *AttendanceController {
	return &AttendanceController{
		Service:       svc,
		Repo:          repo,
		Cal:           cal,
		Retention:     retention,
		MaxPhotoBytes: maxPhotoBytes,
		log:           logger.WithComponent("attendance.controller"),
	}
}

/* =========================================================
   POST /api/attendance/checkin
========================================================= */
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserIDFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	req, err := ac.parse(c)
	if err != nil {
		return ac.badRequest(c, err)
	}

	res, err := ac.Service.CheckIn(c.UserContext(), req.ToCommand(userID))
	if err != nil {
		ac.log.Error().Err(err).Str("user_id", userID.String()).Msg("[CHECKIN ERROR]")
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgServerError)
	}

	switch res.Outcome {
	case service.OutcomeAlreadyCheckedIn:
		return c.Status(fiber.StatusOK).JSON(dto.CheckInResponse{Message: constants.MsgAlreadyCheckedIn})
	default:
		return c.Status(fiber.StatusCreated).JSON(dto.CheckInResponse{
			Message:         constants.MsgCheckedIn,
			CheckInPhotoURL: res.PhotoURL,
		})
	}
}

/* =========================================================
   POST /api/attendance/checkout
========================================================= */
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserIDFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	req, err := ac.parse(c)
	if err != nil {
		return ac.badRequest(c, err)
	}

	res, err := ac.Service.CheckOut(c.UserContext(), req.ToCommand(userID))
	if err != nil {
		ac.log.Error().Err(err).Str("user_id", userID.String()).Msg("[CHECKOUT ERROR]")
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgServerError)
	}

	switch res.Outcome {
	case service.OutcomeNoCheckInFound:
		return c.Status(fiber.StatusBadRequest).JSON(dto.CheckOutResponse{Message: constants.MsgNoCheckInFound})
	case service.OutcomeAlreadyCheckedOut:
		return c.Status(fiber.StatusBadRequest).JSON(dto.CheckOutResponse{Message: constants.MsgAlreadyCheckedOut})
	default:
		return c.Status(fiber.StatusOK).JSON(dto.CheckOutResponse{
			Message:          constants.MsgCheckedOut,
			CheckOutPhotoURL: res.PhotoURL,
		})
	}
}

/* =========================================================
   GET /api/attendance/all (admin)
   ?page=&limit=&from=YYYY-MM-DD&to=YYYY-MM-DD&user=<uuid>
========================================================= */
func (ac *AttendanceController) List(c *fiber.Ctx) error {
	paging, err := helper.ResolvePaging(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	filter := attRepo.Filter{}
	if q.From != "" {
		d, err := ac.Cal.ParseCivilDate(q.From)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from must be a date (YYYY-MM-DD)")
		}
		filter.DateFrom = d.Format(dbtime.CivilDateLayout)
	}
	if q.To != "" {
		d, err := ac.Cal.ParseCivilDate(q.To)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to must be a date (YYYY-MM-DD)")
		}
		filter.DateTo = d.Format(dbtime.CivilDateLayout)
	}
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user must be a valid id")
		}
		filter.UserID = &id
	}

	// gagal retensi tidak boleh menggagalkan listing
	if ac.Retention != nil {
		if _, err := ac.Retention.RunMonthlyCleanup(c.UserContext()); err != nil {
			ac.log.Warn().Err(err).Msg("[CLEANUP ERROR] opportunistic retention failed")
		}
	}

	page, perPage := paging.Page, paging.PerPage
	if paging.All {
		page, perPage = 0, 0
	}
	recs, total, err := ac.Repo.Query(c.UserContext(), filter, page, perPage)
	if err != nil {
		ac.log.Error().Err(err).Msg("[LIST ERROR]")
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgServerError)
	}

	return helper.JsonList(c, service.FormatRecords(ac.Cal, recs), helper.BuildPagination(paging, total))
}

/* ===================== helpers ===================== */

func (ac *AttendanceController) parse(c *fiber.Ctx) (*dto.CheckInRequest, error) {
	return dto.ParseCheckInRequest(c, ac.MaxPhotoBytes)
}

func (ac *AttendanceController) badRequest(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return helper.ValidationError(c, err)
	}
	if errors.Is(err, dto.ErrPhotoUnreadable) {
		return helper.JsonError(c, fiber.StatusBadRequest, dto.ErrPhotoUnreadable.Error())
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}
