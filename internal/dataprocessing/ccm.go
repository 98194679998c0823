package dataprocessing

import (
	"strings"

	"empresascli/internal/normalize"
	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

// Commercial registry column names after normalization
const (
	ColTaxID = "cnpj_cpf"
	ColPhone = "telefone"
	ColCEP   = "cep"
	ColName  = "nome"
	ColCNAE  = "cnae"
)

// CommercialRequiredColumns must be present in a commercial registry sheet,
// matched after header normalization and before renaming.
var CommercialRequiredColumns = []string{"telefone", "cep", "ramal", "cnpj/cpf"}

// CommercialRenames maps normalized source headers to snapshot column names.
var CommercialRenames = map[string]string{
	"cnpj/cpf":                 ColTaxID,
	"rua":                      "logradouro",
	"complem":                  "complemento",
	"e-mail":                   "email",
	"quantidade de empregados": "qtde_empregados",
	"descrição do cnae":        "descricao_cnae",
}

const (
	// activityCodeFirstColumn is the first column scanned for secondary
	// activity codes; the columns before it hold the company record.
	activityCodeFirstColumn = 13

	sentinelTaxID      = "191"
	sentinelNameMarker = "BANCO DO"
)

// NormalizeCommercial applies the commercial registry rules to a raw sheet
// in place: header normalization and renaming, phone area codes, tax ID and
// postal code formatting, then whitespace trimming.
func NormalizeCommercial(t *table.Table) error {
	if err := normalizeHeaders(t, CommercialRequiredColumns, CommercialRenames); err != nil {
		return err
	}

	steps := []struct {
		column string
		fn     func(string) (table.Value, error)
	}{
		{ColPhone, phoneValue},
		{ColTaxID, stringRule(normalize.TaxID)},
		{ColCEP, stringRule(normalize.CEP)},
	}
	for _, step := range steps {
		if err := transformColumn(t, step.column, step.fn); err != nil {
			return err
		}
	}

	t.TrimStrings()
	return nil
}

// ExtractActivityCodes scans every row from column 13 onwards and returns one
// association per cell holding a formatted activity code. Rows whose tax ID
// is the sentinel "191" are skipped unless the company name contains
// "BANCO DO".
func ExtractActivityCodes(t *table.Table) []domain.ActivityCode {
	taxIDs, ok := t.Column(ColTaxID)
	if !ok {
		return nil
	}
	names, hasNames := t.Column(ColName)

	var codes []domain.ActivityCode
	for i := 0; i < t.NumRows(); i++ {
		taxID := taxIDs.Value(i)
		if taxID.Valid && taxID.Str == sentinelTaxID {
			if !hasNames || !names.Value(i).Valid || !strings.Contains(names.Value(i).Str, sentinelNameMarker) {
				continue
			}
		}

		for j := activityCodeFirstColumn; j < t.NumColumns(); j++ {
			c := t.ColumnAt(j)
			if c.Kind != table.String {
				continue
			}
			cell := c.Value(i)
			if cell.Valid && normalize.IsCNAE(cell.Str) {
				codes = append(codes, domain.ActivityCode{TaxID: taxID.Str, Code: cell.Str})
			}
		}
	}
	return codes
}

// ActivityCodeTable converts associations to a (cnpj_cpf, cnae) table.
// An empty tax ID is stored as null.
func ActivityCodeTable(codes []domain.ActivityCode) *table.Table {
	taxIDs := make([]table.Value, len(codes))
	cnaes := make([]table.Value, len(codes))
	for i, c := range codes {
		if c.TaxID != "" {
			taxIDs[i] = table.StringValue(c.TaxID)
		}
		cnaes[i] = table.StringValue(c.Code)
	}
	return table.MustNew(
		table.NewColumn(ColTaxID, table.String, taxIDs...),
		table.NewColumn(ColCNAE, table.String, cnaes...),
	)
}

func phoneValue(s string) (table.Value, error) {
	if p, ok := normalize.Phone(s); ok {
		return table.StringValue(p), nil
	}
	return table.Null(), nil
}
