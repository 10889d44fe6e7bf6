// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	"attendance_backend/internals/helpers/logger"
)

type AuthJWTOpts struct {
	Secret string
	// DB opsional: kalau diisi, user harus ada & aktif
	DB *gorm.DB
	// toleransi jam antar server untuk exp
	Skew time.Duration
}

func AuthMiddleware(opts AuthJWTOpts) fiber.Handler {
	log := logger.WithComponent("auth")
	if opts.Skew == 0 {
		opts.Skew = 30 * time.Second
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse & verifikasi JWT (HS256 saja)
		if opts.Secret == "" {
			log.Error().Msg("JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(opts.Secret), nil
		}); err != nil {
			log.Debug().Err(err).Msg("gagal parse token")
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, opts.Skew); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) Ambil user id & (opsional) validasi user aktif
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		if opts.DB != nil {
			if err := ensureUserActive(c.UserContext(), opts.DB, userID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
				}
				if errors.Is(err, errUserInactive) {
					return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
				}
				log.Error().Err(err).Msg("ensureUserActive")
				return fiber.NewError(fiber.StatusInternalServerError, "Server error")
			}
		}

		// 5) Simpan info klaim ke context
		c.Locals(constants.LocalUserID, userID.String())
		storeBasicClaimsToLocals(c, claims)
		return c.Next()
	}
}
