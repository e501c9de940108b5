package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/expenses"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// DefaultBarWidth is the number of characters of the longest bar.
const DefaultBarWidth = 30

const barChar = "█"

// ChartMarkdown renders a horizontal bar chart of the expense amount per
// category. The longest bar is width characters long.
func ChartMarkdown(title string, breakdown []expenses.CategoryAmount, currency string, width int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	total, largest := decimal.Zero, decimal.Zero
	for _, c := range breakdown {
		total = total.Add(c.Amount)
		largest = decimal.Max(largest, c.Amount)
	}
	if total.IsZero() {
		doc.PlainText("No expenses.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Category", "Amount", "Share", "Chart"},
		Rows:      make([][]string, 0, len(breakdown)),
	}
	for _, c := range breakdown {
		share := c.Amount.Div(total).Mul(decimal.NewFromInt(100))
		table.Rows = append(table.Rows, []string{
			c.Category,
			expenses.M(c.Amount, currency).String(),
			share.StringFixed(1) + "%",
			bar(c.Amount, largest, width),
		})
	}
	doc.Table(table)
	doc.PlainText("Total: " + md.Bold(expenses.M(total, currency).String()))
	return doc.String()
}

// bar returns a bar proportional to v/largest. Any positive value gets at
// least one character.
func bar(v, largest decimal.Decimal, width int) string {
	if width <= 0 || !largest.IsPositive() || !v.IsPositive() {
		return ""
	}
	n := int(v.Div(largest).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	n = min(max(n, 1), width)
	return strings.Repeat(barChar, n)
}
