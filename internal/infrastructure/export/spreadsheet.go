// Package export genera hojas de cálculo en formato SpreadsheetML
// (XML de Excel 2003), legible por Excel y LibreOffice sin dependencias
// binarias.
package export

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/nexile/pharmacy-api/internal/application/reports"
)

var _ reports.TransactionExporter = (*SpreadsheetExporter)(nil)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
)

// SpreadsheetExporter implementa reports.TransactionExporter construyendo el
// documento con etree.
type SpreadsheetExporter struct{}

func NewSpreadsheetExporter() *SpreadsheetExporter { return &SpreadsheetExporter{} }

// ExportTransactions serializa las líneas de venta como un Workbook con una
// hoja "Ventas".
func (e *SpreadsheetExporter) ExportTransactions(data *reports.SalesReportData) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	wb := doc.CreateElement("Workbook")
	wb.CreateAttr("xmlns", nsSpreadsheet)
	wb.CreateAttr("xmlns:o", nsOffice)
	wb.CreateAttr("xmlns:x", nsExcel)
	wb.CreateAttr("xmlns:ss", nsSpreadsheet)

	addStyles(wb)

	ws := wb.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", "Ventas")
	table := ws.CreateElement("Table")

	// Cabecera informativa
	titleRow := table.CreateElement("Row")
	addCell(titleRow, "sHeader", "String",
		fmt.Sprintf("Ventas — %s — emitido %s", data.BranchName, data.GeneratedAt.Format("2006-01-02 15:04")))

	// Cabecera de columnas
	header := table.CreateElement("Row")
	for _, h := range []string{"Transacción", "Fecha", "Producto", "Cantidad", "Precio Unitario", "Total Línea"} {
		addCell(header, "sHeader", "String", h)
	}

	// Líneas de venta
	for _, l := range data.Lines {
		r := table.CreateElement("Row")
		addCell(r, "", "String", l.TransactionID)
		addCell(r, "", "String", l.Timestamp.Format("2006-01-02 15:04:05"))
		addCell(r, "", "String", l.ProductName)
		addCell(r, "", "Number", fmt.Sprintf("%d", l.Quantity))
		addCell(r, "", "Number", l.UnitPrice.String())
		addCell(r, "", "Number", l.LineTotal.String())
	}

	// Totales
	table.CreateElement("Row")
	totals := [][2]string{
		{"Ingresos", data.Revenue.String()},
		{"Costo de ventas", data.COGS.String()},
		{"Utilidad bruta", data.GrossProfit.String()},
	}
	for _, t := range totals {
		r := table.CreateElement("Row")
		addCell(r, "sHeader", "String", t[0])
		addCell(r, "", "Number", t[1])
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar hoja de cálculo: %w", err)
	}
	return out, nil
}

// addStyles registra el estilo de cabecera en negrita.
func addStyles(wb *etree.Element) {
	styles := wb.CreateElement("Styles")
	st := styles.CreateElement("Style")
	st.CreateAttr("ss:ID", "sHeader")
	font := st.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")
}

// addCell crea una celda con tipo y estilo opcionales.
func addCell(row *etree.Element, styleID, dataType, value string) {
	cell := row.CreateElement("Cell")
	if styleID != "" {
		cell.CreateAttr("ss:StyleID", styleID)
	}
	d := cell.CreateElement("Data")
	d.CreateAttr("ss:Type", dataType)
	d.SetText(value)
}
