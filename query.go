package expenses

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
)

// queryLanguage is JSONPath with the full gval operators in filters.
var queryLanguage = gval.Full(jsonpath.Language())

// Query evaluates a JSONPath expression on the JSON form of the ledger:
//
//	{"startingBalance":0,"currentBalance":120,"transactions":[{"date":"2025-07-01","type":"Expense",...}]}
//
// Numbers are float64 in the result.
func Query(ledger *Ledger, expr string) (any, error) {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ledger: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		return nil, fmt.Errorf("could not unmarshal ledger: %w", err)
	}
	eval, err := queryLanguage.NewEvaluable(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	v, err := eval(context.Background(), jobj)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate query %q: %w", expr, err)
	}
	return v, nil
}
