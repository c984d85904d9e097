package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotePDF creates the priced quote document for a variant using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data QuoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteClientBlock(m, data)
	addQuoteLinesTable(m, data)
	addQuoteTotals(m, data)
	addQuoteAmountInWords(m, data)
	addQuoteTerms(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds company name, "QUOTE" title, address and quote number.
func addQuoteHeader(m core.Maroto, data QuoteData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("QUOTE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("%s | %s", data.CompanyAddress, data.CompanyEmail), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote #: %s", data.Number), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addQuoteClientBlock adds client and contract details on the left and quote
// metadata on the right.
func addQuoteClientBlock(m core.Maroto, data QuoteData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightLabelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	rightValueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("CLIENT", labelStyle)),
			col.New(6).Add(text.New("QUOTE DETAILS", rightLabelStyle)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(data.Client, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(3).Add(text.New("Issue Date:", rightLabelStyle)),
			col.New(3).Add(text.New(data.IssueDate, rightValueStyle)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Contract: %s", data.ContractName), valueStyle)),
			col.New(3).Add(text.New("Valid Until:", rightLabelStyle)),
			col.New(3).Add(text.New(data.ValidUntil, rightValueStyle)),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New(fmt.Sprintf("Variant: %s", data.VariantName), valueStyle)),
			col.New(3).Add(text.New("Status:", rightLabelStyle)),
			col.New(3).Add(text.New(data.Status, rightValueStyle)),
		),
	)

	m.AddRows(row.New(3))
}

// addQuoteLinesTable adds the priced formula table with header and body rows.
func addQuoteLinesTable(m core.Maroto, data QuoteData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("SI No", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Formula", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Volume (m³)", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Price / m³", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, line := range data.Lines {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colSINo := col.New(1).Add(text.New(fmt.Sprintf("%d", line.SINo), bodyText))
		colName := col.New(5).Add(text.New(line.FormulaName, bodyTextLeft))
		colVolume := col.New(2).Add(text.New(FormatQty(line.VolumeM3), bodyTextRight))
		colPrice := col.New(2).Add(text.New(FormatEUR(line.UnitPrice), bodyTextRight))
		colTotal := col.New(2).Add(text.New(FormatEUR(line.LineTotal), bodyTextRight))

		if cellStyle != nil {
			colSINo = colSINo.WithStyle(cellStyle)
			colName = colName.WithStyle(cellStyle)
			colVolume = colVolume.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
			colTotal = colTotal.WithStyle(cellStyle)
		}

		m.AddRows(
			row.New(7).Add(colSINo, colName, colVolume, colPrice, colTotal),
		)
	}

	m.AddRows(row.New(2))
}

// addQuoteTotals adds right-aligned total rows.
func addQuoteTotals(m core.Maroto, data QuoteData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}
	grandLabelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	grandValueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Total Volume", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatQty(data.TotalVolumeM3)+" m³", valueStyle)).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Average Price / m³", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatEUR(data.AvgPriceM3), valueStyle)).WithStyle(summaryCell),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandLabelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatEUR(data.TotalAmount), grandValueStyle)).WithStyle(summaryCell),
		),
	)

	m.AddRows(row.New(2))
}

// addQuoteAmountInWords adds the spelled-out grand total.
func addQuoteAmountInWords(m core.Maroto, data QuoteData) {
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Amount in words: %s", data.AmountInWords), props.Text{
				Size:  8,
				Style: fontstyle.Italic,
				Align: align.Left,
			})),
		),
	)

	m.AddRows(row.New(2))
}

// addQuoteTerms adds payment and delivery terms.
func addQuoteTerms(m core.Maroto, data QuoteData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("TERMS", labelStyle)),
		),
	)

	if data.PaymentTerms != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(data.PaymentTerms, valueStyle)),
			),
		)
	}

	if data.DeliveryTerms != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(data.DeliveryTerms, valueStyle)),
			),
		)
	}
}
