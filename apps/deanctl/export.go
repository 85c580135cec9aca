package main

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tvqdev/deanboard/core/grade"
)

// exportGrades writes the class grade sheet to an .xlsx workbook: one row per
// enrolled student with both scores and the weighted total, absent values left
// as empty cells so the spreadsheet stays sortable.
func (cli *commandLine) exportGrades(ctx context.Context, classID int, outPath string) error {
	cls, err := cli.client.Class(ctx, classID)
	if err != nil {
		return err
	}
	sheet, err := cli.client.ClassGrades(ctx, classID)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = fmt.Sprintf("grades-%s.xlsx", cls.Code)
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheetName := "Grades"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	header := []interface{}{"Student Code", "Full Name", "Midterm (30%)", "Final (70%)", "Total"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, sg := range sheet {
		midterm, final := sg.Scores()
		row := []interface{}{sg.StudentCode, sg.FullName, cellScore(midterm), cellScore(final)}
		if t, ok := grade.WeightedTotal(midterm, final); ok {
			row = append(row, t)
		} else {
			row = append(row, nil)
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outPath); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Exported %d rows to %s.\n", len(sheet), outPath)
	return nil
}

func cellScore(s *float64) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
