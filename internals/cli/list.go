package cli

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"suratku_backend/internals/collection"
	"suratku_backend/internals/configs"
	"suratku_backend/internals/sheets"
)

func specFor(c sheets.Collection) collection.Spec {
	switch c.Name {
	case sheets.Users.Name:
		return collection.UsersSpec
	case sheets.IncomingLetters.Name:
		return collection.IncomingSpec
	case sheets.OutgoingLetters.Name:
		return collection.OutgoingSpec
	default:
		return collection.ClassificationsSpec
	}
}

func newListCmd(with runWithGateway) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:       "list <collection>",
		Short:     "Cetak isi koleksi sebagai JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "surat_masuk", "surat_keluar", "classifications"},
		RunE: with(func(cmd *cobra.Command, args []string, gw *sheets.Gateway, _ *configs.Config) error {
			c, ok := sheets.CollectionByName(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("koleksi tidak dikenal: %s", args[0])
			}

			rows, err := collection.New(gw, specFor(c)).List(cmd.Context())
			if err != nil {
				return err
			}
			if c.Name == sheets.Users.Name {
				for _, r := range rows {
					delete(r, "password")
				}
			}

			var b []byte
			if pretty {
				b, err = sonic.ConfigStd.MarshalIndent(rows, "", "  ")
			} else {
				b, err = sonic.Marshal(rows)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "JSON dengan indentasi")
	return cmd
}
