package dataprocessing

import (
	"io"
	"log/slog"

	"empresascli/internal/shared/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var writeWorkbook = testutil.WriteWorkbook

var commercialHeader = []any{
	"CNPJ/CPF", "Nome", "Rua", "Complem", "CEP", "Telefone", "Ramal", "E-mail",
	"Quantidade de Empregados", "Descrição do CNAE", "Bairro", "Cidade", "UF",
	"CNAE 1", "CNAE 2",
}

func commercialRows() [][]any {
	return [][]any{
		commercialHeader,
		{"28.500/0978-41", "PADARIA", " Rua A ", nil, "8780000", "47891234", "0", "a@b.com",
			"3", "Padaria", "Centro", "Mogi", "SP", "4711-3/02", "5611-2/01"},
		{nil, "BANCO DO BRASIL", "Rua B", "Sala 1", "08780-000", "0", nil, nil,
			"10", "Banco", "Centro", "Mogi", "SP", "6422-1/00", "not a code"},
		{"28500097841", "PADARIA FILIAL", "Rua C", nil, 1234567, nil, nil, nil,
			"1", "Padaria", "Centro", "Mogi", "SP"},
	}
}

var federalHeader = []any{
	"CNPJ", "Identif M/F", "Nome Empresarial", "Nome Fantasia", "Capital Social",
	"Situação Cadastral", "Data Situação", "Motivo da Situação", "Inicio Ativ",
	"CNAE Principal", "CNAE Secundaria", "Tp Lograd", "Logradouro", "Numero", "Compl",
	"CEP", "DDD 1", "Telefone 1", "DDD 2", "Telefone 2", "DDD Fax", "Fax",
}

func federalRows() [][]any {
	return [][]any{
		federalHeader,
		{"28.500.097/0001-41", "1", " BANCO DO BRASIL SA ", nil, "1.234,56",
			"ATIVA", "20190701", "00", "20050315",
			"6920601", "4711302", "RUA", "A", "12A", nil,
			"8780000", "11", "47891234", nil, nil, nil, nil},
		{"191", "2", "PADARIA", "PAO", "100,00",
			"ATIVA", "15/03/2024", "00", "20240315",
			"69.20-6-01", nil, "AV", "B", "S/N", "SALA 2",
			"08780-000", nil, nil, nil, nil, nil, nil},
	}
}
