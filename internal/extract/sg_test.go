package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGExtractEndToEnd(t *testing.T) {
	// SG rows vary in width; amount columns count from the end.
	src := &fakeSource{doc: &Document{Pages: []Page{
		{
			Text: "RELEVÉ DE COMPTE du 09/04/2021 au 06/05/2021",
			Tables: []Table{{
				{"Date", "Valeur", "Nature de l'opération", "", "Débit", "Crédit"},
				{"SOLDE PRÉCÉDENT AU 09/04/2021", "", "", "", "", "1.000,00"},
				{"12/04/2021", "12/04/2021", "CARTE X1234 SUPERMARCHE", "", "200,00", ""},
				{"15/04/2021", "15/04/2021", "VIR RECU SALAIRE", "", "", "50,00"},
				{"", "", "TOTAUX DES MOUVEMENTS", "", "200,00", "50,00"},
			}},
		},
		{Text: "NOUVEAU SOLDE AU 06/05/2021 + 850,00"},
	}}}

	st, err := ExtractAndValidate(NewSGExtractor(src), "releve.pdf")
	require.NoError(t, err)

	assert.True(t, st.InitialCreditBalance.Equal(dec("1000")))
	assert.True(t, st.TotalExpense.Equal(dec("200")))
	assert.True(t, st.TotalIncome.Equal(dec("50")))
	assert.True(t, st.FinalCreditBalance.Equal(dec("850")))
	assert.True(t, st.StartDate.Equal(date(2021, 4, 9)))
	assert.True(t, st.EndDate.Equal(date(2021, 5, 6)))

	require.Len(t, st.Transactions, 2)
	assert.Equal(t, "SG", st.Transactions[0].Bank)
	assert.Equal(t, "CARTE X1234 SUPERMARCHE", st.Transactions[0].Description)
	assert.True(t, st.Transactions[0].Date.Equal(date(2021, 4, 12)))
	assert.True(t, st.Transactions[0].ExpenseAmount.Equal(dec("200")))
	assert.True(t, st.Transactions[1].IncomeAmount.Equal(dec("50")))
}

func TestSGAmountColumnsAddressedFromRowEnd(t *testing.T) {
	// The same layout must hold for a wider row.
	src := &fakeSource{doc: &Document{Pages: []Page{{
		Text: "du 09/04/2021 au 06/05/2021",
		Tables: []Table{{
			{"12/04/2021", "12/04/2021", "PRELEVEMENT EDF", "facture", "extra", "90,00", ""},
		}},
	}}}}

	st, err := NewSGExtractor(src).Extract("releve.pdf")
	require.NoError(t, err)
	require.Len(t, st.Transactions, 1)
	assert.True(t, st.Transactions[0].ExpenseAmount.Equal(dec("90")))
	assert.True(t, st.Transactions[0].IncomeAmount.IsZero())
}

func TestSGFinalBalanceScannedFromTrailingPages(t *testing.T) {
	src := &fakeSource{doc: &Document{Pages: []Page{
		{Text: "du 09/04/2021 au 06/05/2021"},
		{Text: "NOUVEAU SOLDE AU 30/04/2021 + 1,00"},
		{Text: "NOUVEAU SOLDE AU 06/05/2021 + 2,00"},
	}}}

	st, err := NewSGExtractor(src).Extract("releve.pdf")
	require.NoError(t, err)
	assert.True(t, st.FinalCreditBalance.Equal(dec("2")), "last page wins, got %s", st.FinalCreditBalance)
}

func TestSGMissingPeriodFailsExtraction(t *testing.T) {
	src := &fakeSource{doc: &Document{Pages: []Page{{Text: "nothing useful"}}}}

	_, err := NewSGExtractor(src).Extract("releve.pdf")
	var unsupported *UnsupportedDocumentError
	assert.ErrorAs(t, err, &unsupported)
}
