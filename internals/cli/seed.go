package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"suratku_backend/internals/configs"
	classificationService "suratku_backend/internals/features/classifications/service"
	userService "suratku_backend/internals/features/users/service"
	"suratku_backend/internals/logger"
	"suratku_backend/internals/seeds"
	"suratku_backend/internals/sheets"
)

func newSeedCmd(with runWithGateway) *cobra.Command {
	var opt seeds.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi kode klasifikasi bawaan dan user awal",
		RunE: with(func(cmd *cobra.Command, _ []string, gw *sheets.Gateway, _ *configs.Config) error {
			us := userService.New(gw, logger.GetLogger(logger.App))
			reg := classificationService.New(gw)
			if err := seeds.RunAllSeeds(cmd.Context(), us, reg, opt); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed selesai")
			return nil
		}),
	}
	cmd.Flags().StringVar(&opt.ClassificationsFile, "classifications", "", "file teks kode klasifikasi (default data bawaan)")
	cmd.Flags().StringVar(&opt.Replace, "replace", "", "regex kode lama yang dihapus")
	cmd.Flags().StringVar(&opt.UsersFile, "users", "", "file JSON user awal (default data bawaan)")
	cmd.Flags().BoolVar(&opt.SkipUsers, "skip-users", false, "jangan membuat user")
	return cmd
}
