package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"suratku_backend/internals/configs"
	"suratku_backend/internals/features/classifications/service"
	"suratku_backend/internals/sheets"
)

// csvClassification: header code,label,type (type boleh kosong).
type csvClassification struct {
	Code  string `csv:"code"`
	Label string `csv:"label"`
	Type  string `csv:"type,omitempty"`
}

func newImportClassificationsCmd(with runWithGateway) *cobra.Command {
	var (
		csvFile string
		txtFile string
		replace string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import-classifications",
		Short: "Gabungkan kode klasifikasi dari CSV atau teks",
		Long: `Membaca kode klasifikasi dari file CSV (code,label,type) atau file teks
dengan format "<kode> <label>" per baris, lalu menggabungkannya ke daftar yang ada.
Kode yang sama diganti; --replace menghapus kode lama yang cocok dengan regex.`,
		RunE: with(func(cmd *cobra.Command, _ []string, gw *sheets.Gateway, _ *configs.Config) error {
			items, err := readClassifications(csvFile, txtFile)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("tidak ada baris klasifikasi yang terbaca")
			}

			reg := service.New(gw)
			if dryRun {
				normalized := make([]service.Item, 0, len(items))
				for _, it := range items {
					n, err := service.Normalize(it)
					if err != nil {
						return err
					}
					normalized = append(normalized, n)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dry-run: %d kode valid\n", len(normalized))
				return nil
			}

			res, err := reg.Import(cmd.Context(), items, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "kept=%d removed=%d imported=%d total=%d\n",
				res.Kept, res.Removed, res.Imported, res.Total)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&csvFile, "csv", "c", "", "file CSV dengan header code,label,type")
	cmd.Flags().StringVarP(&txtFile, "txt", "t", "", "file teks \"<kode> <label>\" per baris")
	cmd.Flags().StringVarP(&replace, "replace", "r", "", "regex kode lama yang dihapus sebelum digabung")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validasi saja, tanpa menulis")
	cmd.MarkFlagsOneRequired("csv", "txt")
	cmd.MarkFlagsMutuallyExclusive("csv", "txt")
	return cmd
}

func readClassifications(csvFile, txtFile string) ([]service.Item, error) {
	if txtFile != "" {
		b, err := os.ReadFile(txtFile)
		if err != nil {
			return nil, err
		}
		return service.ParseLines(string(b)), nil
	}

	b, err := os.ReadFile(csvFile)
	if err != nil {
		return nil, err
	}
	var rows []csvClassification
	if err := csvutil.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("gagal parse CSV: %w", err)
	}
	out := make([]service.Item, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Code) == "" {
			continue
		}
		out = append(out, service.Item{Code: r.Code, Label: r.Label, Type: r.Type})
	}
	return out, nil
}
