package main

import (
	"io"
	"strings"

	"github.com/voidshard/secretary/pkg/notes"
	"github.com/voidshard/secretary/pkg/summary"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderSummary(w io.Writer, res *summary.Result) {
	totals := table.NewWriter()
	totals.SetOutputMirror(w)
	totals.AppendHeader(table.Row{"Weekly total", "Monthly total"})
	totals.AppendRow(table.Row{"$" + res.Weekly.StringFixed(2), "$" + res.Monthly.StringFixed(2)})
	totals.Render()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Transactions")
	t.AppendHeader(table.Row{"Date", "Name", "Category", "Amount"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	for _, txn := range res.Transactions {
		t.AppendRow(table.Row{txn.Date, txn.Name, strings.Join(txn.Category, " / "), "$" + txn.Amount.StringFixed(2)})
	}
	t.Render()
}

func renderNotes(w io.Writer, found []notes.Note) {
	if len(found) == 0 {
		io.WriteString(w, "No notes found\n")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Date", "Location", "Description"})
	for _, n := range found {
		loc := ""
		if n.Location != nil {
			loc = *n.Location
		}
		t.AppendRow(table.Row{n.ID, n.Date, loc, n.Description})
	}
	t.Render()
}
