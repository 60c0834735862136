package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"suratku_backend/internals/configs"
	"suratku_backend/internals/features/correspondence/outgoing/service"
	"suratku_backend/internals/sheets"
)

func newNextNumberCmd(with runWithGateway) *cobra.Command {
	var (
		tanggal string
		kode    string
		sub     int
	)

	cmd := &cobra.Command{
		Use:   "next-number",
		Short: "Tampilkan nomor surat keluar berikutnya (tanpa menulis)",
		RunE: with(func(cmd *cobra.Command, _ []string, gw *sheets.Gateway, cfg *configs.Config) error {
			loc := cfg.Location()
			day := time.Now().In(loc)
			if tanggal != "" {
				t, err := time.ParseInLocation("2006-01-02", tanggal, loc)
				if err != nil {
					return fmt.Errorf("format --tanggal harus yyyy-mm-dd")
				}
				day = t
			}

			svc := service.New(gw, service.Options{Location: loc, DefaultOrgCode: cfg.DefaultOrgCode})
			p, err := svc.NextNumber(cmd.Context(), service.PreviewRequest{Tanggal: day, Kode: kode, Sub: sub})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, p.Rendered)
			for i, pl := range p.Planned {
				if i == 0 {
					continue
				}
				fmt.Fprintf(out, "  %-6s %s\n", pl.Tipe, pl.Nomor)
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&tanggal, "tanggal", "", "tanggal surat yyyy-mm-dd (default hari ini)")
	cmd.Flags().StringVar(&kode, "kode", "", "kode klasifikasi")
	cmd.Flags().IntVar(&sub, "sub", 0, "jumlah surat Sub")
	_ = cmd.MarkFlagRequired("kode")
	return cmd
}
