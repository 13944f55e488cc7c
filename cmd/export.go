package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/internal/store"
)

var (
	exportOut     string
	exportHotOnly bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export captured leads to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := st.ListLeads(ctx, store.LeadFilter{HotOnly: exportHotOnly, Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "list leads")
		}

		file, err := buildWorkbook(leads)
		if err != nil {
			return err
		}
		if err := file.Save(exportOut); err != nil {
			return eris.Wrap(err, "save workbook")
		}

		zap.L().Info("leads exported",
			zap.String("path", exportOut),
			zap.Int("count", len(leads)),
		)
		return nil
	},
}

func buildWorkbook(leads []model.Lead) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return nil, eris.Wrap(err, "add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Business", "Email", "Place ID", "Overall", "Rot", "Status", "Hot", "Captured"} {
		header.AddCell().SetString(h)
	}

	for _, l := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(l.BusinessName)
		row.AddCell().SetString(l.Email)
		row.AddCell().SetString(l.PlaceID)
		row.AddCell().SetInt(l.OverallScore)
		row.AddCell().SetInt(l.RotScore)
		row.AddCell().SetString(l.StatusLabel)
		row.AddCell().SetBool(l.Hot)
		row.AddCell().SetString(l.CreatedAt.Format("2006-01-02 15:04"))
	}

	return file, nil
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "leads.xlsx", "output path")
	exportCmd.Flags().BoolVar(&exportHotOnly, "hot", false, "only hot leads")
	rootCmd.AddCommand(exportCmd)
}
