// Package export renders a month's transactions as a downloadable CSV file.
package export

import (
	"bytes"
	"encoding/csv"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

var csvHeader = []string{"date", "kind", "description", "tag", "section", "source", "amount"}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

// Render writes one row per transaction plus a trailing total row. tagNames
// resolves tag ids to display names; unknown ids render empty.
func (r *CsvRendererImpl) Render(rows []transaction.Transaction, tagNames map[string]string) (string, error) {
	data := make([][]string, 0, len(rows)+2)
	data = append(data, csvHeader)

	var total money.Cents
	for _, row := range rows {
		data = append(data, []string{
			row.Date.Format("2006-01-02"),
			string(row.Kind),
			row.Description,
			tagNames[row.TagId],
			row.Section,
			row.Source,
			row.Amount.String(),
		})
		total += row.Amount
	}
	data = append(data, []string{"", "", "", "", "", "TOTAL", total.String()})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, record := range data {
		if err := writer.Write(record); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
