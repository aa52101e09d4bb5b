package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

// renderEntities prints one row per entity
func renderEntities(w io.Writer, entities []domain.Entity) {
	tw := newTable(w, []string{"NAME", "TYPE", "SCHOOL", "RANK", "ID"})
	for _, e := range entities {
		school, _ := domain.SchoolOf(e)
		rank, _ := domain.RankOf(e)
		tw.Append([]string{e.GetName(), string(e.GetType()), orDash(school), orDash(rank), domain.SlugOf(e)})
	}
	tw.Render()
}

// renderIssues prints the schema violations of a rejected payload
func renderIssues(w io.Writer, issues []domain.ValidationIssue) {
	tw := newTable(w, []string{"PATH", "PROBLEM"})
	for _, issue := range issues {
		tw.Append([]string{issue.Path, issue.Message})
	}
	tw.Render()
}

// renderCounts prints the per-variant totals of a dataset
func renderCounts(w io.Writer, ds *domain.Dataset) {
	counts := ds.Counts()
	tw := newTable(w, []string{"TYPE", "COUNT"})
	tw.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, t := range domain.EntityTypes() {
		tw.Append([]string{string(t), strconv.Itoa(counts[t])})
	}
	tw.SetFooter([]string{"TOTAL", strconv.Itoa(ds.Total())})
	tw.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
