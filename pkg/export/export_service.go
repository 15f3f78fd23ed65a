package export

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/tag"
	"github.com/finbook/finbook/pkg/transaction"
)

type Service interface {
	// ExportMonth renders the month's incomes and expenses as CSV and
	// suggests a file name for the download.
	ExportMonth(ctx context.Context, month utils.MonthKey) (content string, filename string, err error)
}

type ServiceImpl struct {
	transactions transaction.Service
	tags         tag.Service
	renderer     *CsvRendererImpl
}

func NewExportService(transactions transaction.Service, tags tag.Service) *ServiceImpl {
	return &ServiceImpl{
		transactions: transactions,
		tags:         tags,
		renderer:     NewCsvRenderer(),
	}
}

func (s *ServiceImpl) ExportMonth(ctx context.Context, month utils.MonthKey) (string, string, error) {
	var rows []transaction.Transaction
	for _, kind := range []transaction.Kind{transaction.KindIncome, transaction.KindExpense} {
		listing, err := s.transactions.ListMonth(ctx, kind, month, "date", "asc")
		if err != nil {
			return "", "", err
		}
		rows = append(rows, listing.Rows...)
	}

	tagNames, err := s.tagNames(ctx)
	if err != nil {
		return "", "", err
	}

	content, err := s.renderer.Render(rows, tagNames)
	if err != nil {
		return "", "", err
	}
	return content, fmt.Sprintf("export_%s.csv", month), nil
}

func (s *ServiceImpl) tagNames(ctx context.Context) (map[string]string, error) {
	names := map[string]string{}
	for _, tagType := range []tag.Type{tag.TypeIncome, tag.TypeExpense} {
		tags, err := s.tags.List(ctx, tagType)
		if err != nil {
			return nil, err
		}
		for _, t := range tags {
			names[t.ID] = t.Name
		}
	}
	return names, nil
}
