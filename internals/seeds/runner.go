package seeds

import (
	"context"
	"log"

	classificationService "suratku_backend/internals/features/classifications/service"
	userService "suratku_backend/internals/features/users/service"
	classifications "suratku_backend/internals/seeds/classifications"
	users "suratku_backend/internals/seeds/users"
)

// Options: path kosong → data bawaan yang di-embed.
type Options struct {
	UsersFile           string
	ClassificationsFile string
	Replace             string
	SkipUsers           bool
}

func RunAllSeeds(ctx context.Context, us *userService.Service, reg *classificationService.Registry, opt Options) error {
	//* Classification
	replace := opt.Replace
	if replace == "" && opt.ClassificationsFile == "" {
		replace = classifications.DefaultReplace
	}
	if _, err := classifications.SeedClassificationsFromFile(ctx, reg, opt.ClassificationsFile, replace); err != nil {
		return err
	}

	//* User
	if opt.SkipUsers {
		return nil
	}
	n, err := users.SeedUsersFromJSON(ctx, us, opt.UsersFile)
	if err != nil {
		return err
	}
	log.Printf("[INFO] Seed selesai, %d user baru", n)
	return nil
}
