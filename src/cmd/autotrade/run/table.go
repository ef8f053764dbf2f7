package run

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jiaming2012/autotrade/src/orders"
	"github.com/jiaming2012/autotrade/src/strategy"
)

func FormatSnapshots(snapshots []strategy.Snapshot) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Symbol", "State", "Bid", "Ask", "Skew", "Qty", "Realized", "Commissions", "Total", "Exec p99 (us)"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, s := range snapshots {
		table.Append([]string{
			s.Symbol,
			string(s.State),
			p.Sprintf("%.2f", s.Bid),
			p.Sprintf("%.2f", s.Ask),
			fmt.Sprintf("%.4f", s.Skew),
			p.Sprintf("%d", s.Position.Quantity),
			fmt.Sprintf("$%s", p.Sprintf("%.2f", s.Position.Realized)),
			fmt.Sprintf("$%s", p.Sprintf("%.2f", s.Position.Commissions)),
			fmt.Sprintf("$%s", p.Sprintf("%.2f", s.Position.Total)),
			p.Sprintf("%.0f", s.Execution.P99Us),
		})
	}

	table.Render()
	return display.String()
}

func FormatCombo(combo *orders.Combo) string {
	display := &strings.Builder{}
	display.WriteString(fmt.Sprintf("%s (%s)\n", combo.Name, combo.ID))

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Leg", "Instrument", "Order", "Qty", "Option", "Algo"})
	table.SetColumnSeparator("")

	for _, leg := range combo.Legs {
		table.Append([]string{
			string(leg.Note.Type),
			leg.Order.Instrument.Name,
			string(leg.Side),
			fmt.Sprintf("%d", leg.Quantity),
			string(leg.Note.Option),
			string(leg.Note.Algo),
		})
	}

	table.Render()
	return display.String()
}
