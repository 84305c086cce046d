package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papeleria/papeleria-api/internal/application/dto"
)

func TestGenerateReportPDF_ProduceUnPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Papelería El Estudiante")
	r := &dto.GeneralReportResponse{
		TotalProfit:   decimal.NewFromInt(3500),
		TotalExpenses: decimal.NewFromInt(500),
		TotalRevenue:  decimal.NewFromInt(10000),
		SaleCount:     1,
		TopProducts: []dto.TopProductResponse{
			{ProductID: "p1", Name: "Cuaderno", UnitsSold: 20, Revenue: decimal.NewFromInt(10000)},
		},
	}

	out, err := g.GenerateReportPDF(r, time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReportPDF_SinVentas(t *testing.T) {
	g := NewMarotoReportGenerator("Papelería El Estudiante")
	r := &dto.GeneralReportResponse{
		TotalProfit:   decimal.NewFromInt(-500),
		TotalExpenses: decimal.NewFromInt(500),
		TotalRevenue:  decimal.Zero,
	}

	out, err := g.GenerateReportPDF(r, time.Now(), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"1000":     "1.000",
		"25000":    "25.000",
		"1000000":  "1.000.000",
		"-25000":   "-25.000",
		"-999":     "-999",
		"12345678": "12.345.678",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}
