// Package sheets pushes month summaries into a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"github.com/finbook/finbook/internal/utils"
	"github.com/finbook/finbook/pkg/dashboard"
	"github.com/finbook/finbook/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var ErrUnauthenticated = fmt.Errorf("user is not authenticated with Google")

type Service interface {
	// PushMonth appends the month's summary as one spreadsheet row and
	// returns the updated range.
	PushMonth(ctx context.Context, month utils.MonthKey) (string, error)
}

type ServiceImpl struct {
	auth          *GoogleAuth
	dashboard     dashboard.Service
	spreadsheetId string
}

func NewSheetsService(auth *GoogleAuth, dashboardService dashboard.Service, spreadsheetId string) *ServiceImpl {
	return &ServiceImpl{auth: auth, dashboard: dashboardService, spreadsheetId: spreadsheetId}
}

func (s *ServiceImpl) PushMonth(ctx context.Context, month utils.MonthKey) (string, error) {
	if s.spreadsheetId == "" {
		return "", fmt.Errorf("no spreadsheet configured")
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}

	summary, err := s.dashboard.GetSummary(ctx, month)
	if err != nil {
		return "", err
	}

	service, err := s.prepareSheetsService(ctx, userId)
	if err != nil {
		return "", err
	}

	values := &sheetsapi.ValueRange{
		Values: [][]any{{
			string(summary.Month),
			summary.TotalIncomes.Float(),
			summary.TotalExpenses.Float(),
			summary.Balance.Float(),
		}},
	}
	resp, err := service.Spreadsheets.Values.
		Append(s.spreadsheetId, "A1", values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to append to spreadsheet: %v", err)
		log.Error(err)
		return "", err
	}
	return resp.Updates.UpdatedRange, nil
}

func (s *ServiceImpl) prepareSheetsService(ctx context.Context, userId int) (*sheetsapi.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Sheets client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
