package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/expenses"
	"github.com/etnz/expenses/date"
	"github.com/etnz/expenses/docs"
	"github.com/etnz/expenses/renderer"
	"google.golang.org/genai"
)

// Instruction returns the system instruction of the assistant: its role and
// an overview of the ledger.
func Instruction(ledger *expenses.Ledger, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a personal finance assistant. The user keeps a ledger of their daily
expenses and incomes, amounts are in %s. Today is %s.

Answer the user's questions about their spending using the tools to read the
ledger. Amounts in the ledger are positive, the type tells whether money went
out (Expense) or came in (Income). The balance of a transaction is the running
balance right after it.

Be concise, show amounts with their currency and use markdown tables for lists.

Here is an overview of the whole ledger:

`, currency, date.Today())
	txs := ledger.Collect()
	b.WriteString(renderer.SummaryMarkdown(ledger.Summarize(date.Range{}), expenses.CategoryBreakdown(txs), currency))
	return b.String()
}

// Functions returns the tools the model can call to read the ledger.
func Functions(ledger *expenses.Ledger, currency string) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name: "Query",
				Description: `Query evaluates a JSONPath expression on the ledger in JSON:

{"startingBalance":0,"currentBalance":120,"transactions":[{"date":"2025-07-01","type":"Expense","category":"Food","description":"lunch","amount":30,"balance":70}]}

for instance $.transactions[?(@.category == "Food")].amount lists the amounts spent on food.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"expression": {Type: genai.TypeString, Description: "The JSONPath expression."},
					},
					Required: []string{"expression"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "The JSON result of the query.",
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				expr, err := stringArg(args, "expression")
				if err != nil {
					return "", err
				}
				v, err := expenses.Query(ledger, expr)
				if err != nil {
					return "", err
				}
				out, err := json.Marshal(v)
				return string(out), err
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Summary",
				Description: "Summary computes the total expenses, total income, balances and the expenses per category between two dates.",
				Parameters:  rangeSchema(),
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown report with the metrics and a table of expenses per category.",
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				r, err := rangeArgs(args)
				if err != nil {
					return "", err
				}
				s := ledger.Summarize(r)
				return renderer.SummaryMarkdown(s, expenses.CategoryBreakdown(ledger.Collect(expenses.ByRange(r))), currency), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Transactions",
				Description: "Transactions lists the transactions between two dates with their running balance.",
				Parameters:  rangeSchema(),
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of transactions.",
				},
			},
			Func: func(_ context.Context, args map[string]any) (string, error) {
				r, err := rangeArgs(args)
				if err != nil {
					return "", err
				}
				return renderer.TransactionsMarkdown("Transactions", ledger.Collect(expenses.ByRange(r)), currency), nil
			},
		},
	}
}

func rangeSchema() *genai.Schema {
	dates := must(docs.GetTopic("dates"))
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"start": {
				Type:        genai.TypeString,
				Description: "The first day included, no limit if empty. Dates use a flexible format:\n\n" + dates,
			},
			"end": {
				Type:        genai.TypeString,
				Description: "The last day included, no limit if empty. Same format as start.",
			},
		},
	}
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// rangeArgs returns the range of the 'start' and 'end' arguments.
func rangeArgs(args map[string]any) (date.Range, error) {
	var bounds [2]date.Date
	for i, name := range []string{"start", "end"} {
		s, err := stringArg(args, name)
		if err != nil {
			return date.Range{}, err
		}
		if s == "" {
			continue
		}
		if bounds[i], err = date.ParseRelative(s); err != nil {
			return date.Range{}, fmt.Errorf("argument %q must be a valid date got %q: %w", name, s, err)
		}
	}
	return date.Between(bounds[0], bounds[1]), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
