// file: internals/features/attendance/attendances/dto/attendance_dto.go
package dto

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"attendance_backend/internals/constants"
	attModel "attendance_backend/internals/features/attendance/attendances/model"
	"attendance_backend/internals/features/attendance/attendances/service"
	"attendance_backend/internals/helpers/blob"
)

var validate = validator.New()

var (
	ErrMissingFields   = errors.New(constants.MsgCheckInFieldsReq)
	ErrInvalidCoords   = errors.New("Latitude and longitude must be numbers")
	ErrPhotoNotImage   = errors.New("Photo must be a JPEG, PNG, WebP or GIF image")
	ErrPhotoTooLarge   = errors.New("Photo is too large")
	ErrPhotoUnreadable = errors.New("Photo could not be read")
)

/* =========================================================
   REQUEST: POST /api/attendance/checkin | /checkout
   multipart/form-data: lat, lon, photo
========================================================= */

type CheckInRequest struct {
	Lat   float64 `validate:"latitude"`
	Lon   float64 `validate:"longitude"`
	Photo *service.Photo
}

// ParseCheckInRequest baca form sekali di boundary → request tervalidasi atau error 400.
func ParseCheckInRequest(c *fiber.Ctx, maxPhotoBytes int64) (*CheckInRequest, error) {
	rawLat := strings.TrimSpace(c.FormValue("lat"))
	rawLon := strings.TrimSpace(c.FormValue("lon"))
	fh, ferr := c.FormFile("photo")
	if rawLat == "" || rawLon == "" || ferr != nil || fh == nil {
		return nil, ErrMissingFields
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, ErrInvalidCoords
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, ErrInvalidCoords
	}

	photo, err := readPhoto(fh, maxPhotoBytes)
	if err != nil {
		return nil, err
	}

	req := &CheckInRequest{Lat: lat, Lon: lon, Photo: photo}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	return req, nil
}

func readPhoto(fh *multipart.FileHeader, maxBytes int64) (*service.Photo, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, ErrPhotoTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, ErrPhotoUnreadable
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhotoUnreadable, err)
	}
	if len(data) == 0 {
		return nil, ErrMissingFields
	}
	if _, ok := blob.DetectImage(data); !ok {
		return nil, ErrPhotoNotImage
	}
	return &service.Photo{Data: data, Filename: fh.Filename}, nil
}

// ToCommand → input lifecycle engine
func (r *CheckInRequest) ToCommand(userID uuid.UUID) service.Command {
	return service.Command{
		UserID:   userID,
		Location: &attModel.GeoPoint{Lat: r.Lat, Lon: r.Lon},
		Photo:    r.Photo,
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type CheckInResponse struct {
	Message         string  `json:"message"`
	CheckInPhotoURL *string `json:"checkInPhotoUrl,omitempty"`
}

type CheckOutResponse struct {
	Message          string  `json:"message"`
	CheckOutPhotoURL *string `json:"checkOutPhotoUrl,omitempty"`
}

/* =========================================================
   QUERY: GET /api/attendance/all
========================================================= */

type ListQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	UserID string `query:"user"`
}
