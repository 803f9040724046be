package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xuri/excelize/v2"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

// printFront renders the Pareto front as a console table, one row per
// non-dominated strain design, best growth first.
func printFront(front []*framework.Individual, evaluator framework.Evaluator) {
	objectives := evaluator.Objectives()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("PARETO FRONT")
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	for _, name := range objectives {
		header = append(header, name)
	}
	header = append(header, "knockouts")
	t.AppendHeader(header)

	for i, ind := range front {
		row := table.Row{i + 1}
		for _, v := range ind.Fitness {
			row = append(row, fmt.Sprintf("%g", v))
		}
		row = append(row, knockoutLabel(ind.Genome))
		t.AppendRow(row)
	}

	t.Render()
}

// writeFrontXLSX exports the front to an Excel sheet.
func writeFrontXLSX(front []*framework.Individual, evaluator framework.Evaluator, path string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "ParetoFront"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	headStyle, _ := fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	headers := []string{"#"}
	headers = append(headers, evaluator.Objectives()...)
	headers = append(headers, "knockouts", "crowding")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, headStyle)
	}

	for r, ind := range front {
		values := []interface{}{r + 1}
		for _, v := range ind.Fitness {
			values = append(values, v)
		}
		values = append(values, knockoutLabel(ind.Genome), ind.Crowding)
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			fx.SetCellValue(sheet, cell, v)
		}
	}

	return fx.SaveAs(path)
}

func frontPoints(front []*framework.Individual) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(front))
	for i, ind := range front {
		points[i] = framework.ObjectiveSpacePoint(ind.Fitness)
	}
	return points
}

func knockoutLabel(genome framework.Genome) string {
	knockouts := genome.Inactive()
	if len(knockouts) == 0 {
		return "wild type"
	}
	return strings.Join(knockouts, ", ")
}
