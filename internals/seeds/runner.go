package seeds

import (
	"context"

	"gorm.io/gorm"

	users "attendance_backend/internals/seeds/users/auth"
)

// RunAllSeeds jalankan seeder; path kosong → dilewati.
func RunAllSeeds(ctx context.Context, db *gorm.DB, usersFile string) error {
	if usersFile == "" {
		return nil
	}

	//* User (admin + karyawan awal)
	if _, err := users.SeedUsersFromJSON(ctx, db, usersFile); err != nil {
		return err
	}
	return nil
}
