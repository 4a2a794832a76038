package export_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/application/reports"
	"github.com/nexile/pharmacy-api/internal/infrastructure/export"
)

func TestExportTransactions_DocumentoValido(t *testing.T) {
	e := export.NewSpreadsheetExporter()

	data := &reports.SalesReportData{
		BranchName:  "Centro",
		GeneratedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Lines: []reports.SalesReportLine{
			{
				TransactionID: "t1",
				Timestamp:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
				ProductName:   "Amoxicilina",
				Quantity:      2,
				UnitPrice:     decimal.RequireFromString("12.50"),
				LineTotal:     decimal.RequireFromString("25.00"),
			},
		},
		Revenue:      decimal.RequireFromString("25.00"),
		COGS:         decimal.RequireFromString("10.00"),
		GrossProfit:  decimal.RequireFromString("15.00"),
		Transactions: 1,
	}

	out, err := e.ExportTransactions(data)
	require.NoError(t, err)

	// El resultado debe ser XML parseable con la estructura Workbook/Worksheet/Table.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	wb := doc.SelectElement("Workbook")
	require.NotNil(t, wb)

	ws := wb.SelectElement("Worksheet")
	require.NotNil(t, ws)
	assert.Equal(t, "Ventas", ws.SelectAttrValue("ss:Name", ""))

	table := ws.SelectElement("Table")
	require.NotNil(t, table)

	rows := table.SelectElements("Row")
	// título + cabecera + 1 línea + separador + 3 totales
	require.Len(t, rows, 7)

	// La fila de la línea de venta conserva los valores.
	cells := rows[2].SelectElements("Cell")
	require.Len(t, cells, 6)
	assert.Equal(t, "t1", cells[0].SelectElement("Data").Text())
	assert.Equal(t, "Amoxicilina", cells[2].SelectElement("Data").Text())
	assert.Equal(t, "2", cells[3].SelectElement("Data").Text())
	assert.Equal(t, "Number", cells[5].SelectElement("Data").SelectAttrValue("ss:Type", ""))
	assert.Equal(t, "25.00", cells[5].SelectElement("Data").Text())
}

func TestExportTransactions_SinVentas(t *testing.T) {
	e := export.NewSpreadsheetExporter()

	out, err := e.ExportTransactions(&reports.SalesReportData{
		BranchName:  "Norte",
		GeneratedAt: time.Now(),
		Revenue:     decimal.Zero,
		COGS:        decimal.Zero,
		GrossProfit: decimal.Zero,
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	table := doc.FindElement("//Worksheet/Table")
	require.NotNil(t, table)
	// título + cabecera + separador + 3 totales, sin filas de línea
	assert.Len(t, table.SelectElements("Row"), 6)
}
