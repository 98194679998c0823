package dataprocessing

import (
	"context"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	apperrors "empresascli/internal/errors"
	"empresascli/internal/table"
)

// Report column names
const (
	ColCompanies    = "empresas"
	ColCapitalTotal = "capital_social_total"
)

// IdentityAnalysis returns the snapshot unchanged
type IdentityAnalysis struct{}

// Name implements Analysis
func (IdentityAnalysis) Name() string { return DefaultAnalysis }

// Apply implements Analysis
func (IdentityAnalysis) Apply(_ context.Context, t *table.Table) (*table.Table, error) {
	return t, nil
}

// CNAECountAnalysis counts rows per activity code, most frequent first.
// Rows without a code are counted under a null code.
type CNAECountAnalysis struct{}

// Name implements Analysis
func (CNAECountAnalysis) Name() string { return "cnae-count" }

// Apply implements Analysis
func (CNAECountAnalysis) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	groups, err := groupByCNAE(ctx, t, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].key.Str < groups[j].key.Str
	})

	codes := make([]table.Value, len(groups))
	counts := make([]table.Value, len(groups))
	for i, g := range groups {
		codes[i] = g.key
		counts[i] = table.StringValue(strconv.Itoa(g.count))
	}
	return table.New(
		table.NewColumn(ColCNAE, table.String, codes...),
		table.NewColumn(ColCompanies, table.String, counts...),
	)
}

// CapitalByCNAEAnalysis sums the declared share capital per activity code
// with exact decimal arithmetic, largest total first.
type CapitalByCNAEAnalysis struct{}

// Name implements Analysis
func (CapitalByCNAEAnalysis) Name() string { return "capital-by-cnae" }

// Apply implements Analysis
func (CapitalByCNAEAnalysis) Apply(ctx context.Context, t *table.Table) (*table.Table, error) {
	capital, ok := t.Column(ColCapital)
	if !ok {
		return nil, apperrors.NewMalformedInputError("snapshot has no "+ColCapital+" column", nil)
	}

	groups, err := groupByCNAE(ctx, t, func(row int, g *cnaeGroup) error {
		v := capital.Value(row)
		if !v.Valid || v.Str == "" {
			return nil
		}
		amount, err := decimal.NewFromString(v.Str)
		if err != nil {
			return apperrors.NewUnparseableValueError(v.Str, "invalid share capital").
				WithContext("column", ColCapital).
				WithContext("row", row)
		}
		g.total = g.total.Add(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].total.Cmp(groups[j].total); c != 0 {
			return c > 0
		}
		return groups[i].key.Str < groups[j].key.Str
	})

	codes := make([]table.Value, len(groups))
	counts := make([]table.Value, len(groups))
	totals := make([]table.Value, len(groups))
	for i, g := range groups {
		codes[i] = g.key
		counts[i] = table.StringValue(strconv.Itoa(g.count))
		totals[i] = table.StringValue(g.total.StringFixed(2))
	}
	return table.New(
		table.NewColumn(ColCNAE, table.String, codes...),
		table.NewColumn(ColCompanies, table.String, counts...),
		table.NewColumn(ColCapitalTotal, table.String, totals...),
	)
}

type cnaeGroup struct {
	key   table.Value
	count int
	total decimal.Decimal
}

// groupByCNAE groups rows by the cnae column in first-seen order, calling
// each for every row with its group.
func groupByCNAE(ctx context.Context, t *table.Table, each func(row int, g *cnaeGroup) error) ([]*cnaeGroup, error) {
	cnae, ok := t.Column(ColCNAE)
	if !ok {
		return nil, apperrors.NewMalformedInputError("snapshot has no "+ColCNAE+" column", nil)
	}

	index := make(map[table.Value]*cnaeGroup)
	var groups []*cnaeGroup
	for i := 0; i < t.NumRows(); i++ {
		if i%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		key := cnae.Value(i)
		if !key.Valid {
			key = table.Null()
		}
		g, ok := index[key]
		if !ok {
			g = &cnaeGroup{key: key, total: decimal.Zero}
			index[key] = g
			groups = append(groups, g)
		}
		g.count++
		if each != nil {
			if err := each(i, g); err != nil {
				return nil, err
			}
		}
	}
	return groups, nil
}
