package dataprocessing

import (
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"empresascli/internal/normalize"
	"empresascli/internal/table"
)

// Federal registry column names after normalization
const (
	ColCNPJ            = "cnpj"
	ColCapital         = "capital_social"
	ColActivityStart   = "inicio_atividade"
	ColStatusDate      = "data_situacao"
	ColCompanyName     = "nome_empresarial"
	ColStreetNumber    = "numero"
	compactDateLayout  = "20060102"
	excelSerialLimit   = 1e6
)

// FederalRequiredColumns must be present in a federal registry sheet,
// matched after header normalization and before renaming.
var FederalRequiredColumns = []string{
	"fax", "ddd fax", "ddd 1", "telefone 1", "ddd 2", "telefone 2",
	"data situação", "inicio ativ", "cep", "cnpj", "cnae principal", "cnae secundaria",
}

// FederalRenames maps normalized source headers to snapshot column names.
// "situcacao_cadastral" is spelled the way downstream consumers expect.
var FederalRenames = map[string]string{
	"identif m/f":        "id_matriz_filial",
	"nome empresarial":   "nome_empresarial",
	"nome fantasia":      "nome_fantasia",
	"natureza juridica":  "natureza_juridica",
	"capital social":     "capital_social",
	"situação cadastral": "situcacao_cadastral",
	"data situação":      "data_situacao",
	"motivo da situação": "motivo_situacao",
	"inicio ativ":        "inicio_atividade",
	"cnae principal":     "cnae",
	"cnae secundaria":    "cnae_secundaria",
	"tp lograd":          "tp_logradouro",
	"compl":              "complemento",
	"ddd 1":              "ddd1",
	"telefone 1":         "telefone1",
	"ddd 2":              "ddd2",
	"telefone 2":         "telefone2",
	"ddd fax":            "ddd_fax",
}

// NormalizeFederal applies the federal registry rules to a raw sheet in
// place. The two date columns become Date columns.
func NormalizeFederal(t *table.Table) error {
	if err := normalizeHeaders(t, FederalRequiredColumns, FederalRenames); err != nil {
		return err
	}

	t.TrimStrings()

	if err := transformColumn(t, ColCNPJ, stringRule(normalize.TaxID)); err != nil {
		return err
	}

	if t.Has(ColCapital) {
		if err := transformColumn(t, ColCapital, stringRule(normalize.Money)); err != nil {
			return err
		}
	}

	if err := convertColumn(t, ColActivityStart, table.Date, dateRule(normalize.ParseISODate)); err != nil {
		return err
	}
	if err := convertColumn(t, ColStatusDate, table.Date, dateRule(normalize.ParseDate)); err != nil {
		return err
	}

	if err := transformColumn(t, ColCEP, stringRule(normalize.PaddedCEP)); err != nil {
		return err
	}

	return transformColumn(t, ColCNAE, func(s string) (table.Value, error) {
		code, err := normalize.CNAE(s)
		if err != nil {
			return table.Value{}, err
		}
		return table.StringValue(code), nil
	})
}

// dateRule rewrites a compact YYYYMMDD cell as YYYY-MM-DD and parses it
// with parse. Numeric cells holding an Excel date serial are converted
// first. Text cells always go to parse as written.
func dateRule(parse func(string) (time.Time, bool, error)) func(table.Value) (table.Value, error) {
	return func(v table.Value) (table.Value, error) {
		s := v.Str
		if v.Numeric {
			s = fromExcelSerial(s)
		}
		if isCompactDate(s) {
			iso, err := normalize.CompactDate(s)
			if err != nil {
				return table.Value{}, err
			}
			s = iso
		}
		d, ok, err := parse(s)
		if err != nil {
			return table.Value{}, err
		}
		if !ok {
			return table.Null(), nil
		}
		return table.DateValue(d), nil
	}
}

// fromExcelSerial converts the text of a numeric Excel date serial
// ("43647") to YYYYMMDD. Numbers outside the serial range, such as a
// compact date stored as a number, are returned unchanged.
func fromExcelSerial(s string) string {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < 1 || serial >= excelSerialLimit {
		return s
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return s
	}
	return t.Format(compactDateLayout)
}

func isCompactDate(s string) bool {
	return len(s) == len(compactDateLayout) && normalize.Digits(s) == s
}
