package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ReportStore implements interfaces.ReportStore using SurrealDB.
type ReportStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db *surrealdb.DB, logger *common.Logger) *ReportStore {
	return &ReportStore{db: db, logger: logger}
}

func (s *ReportStore) SaveReport(ctx context.Context, report *models.HealthReport) error {
	sql := "UPSERT $rid CONTENT $report"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID(tableReport, report.ReportID),
		"report": report,
	}

	if err := execWrite(ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (s *ReportStore) GetReport(ctx context.Context, reportID string) (*models.HealthReport, error) {
	report, err := surrealdb.Select[models.HealthReport](ctx, s.db, surrealmodels.NewRecordID(tableReport, reportID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select report: %w", err)
	}
	if report == nil || report.ReportID == "" {
		return nil, models.ErrNotFound
	}
	return report, nil
}

func (s *ReportStore) ListReports(ctx context.Context, userID string) ([]*models.HealthReport, error) {
	sql := "SELECT * FROM health_report WHERE user_id = $user_id ORDER BY created_at DESC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.HealthReport](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	var reports []*models.HealthReport
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			reports = append(reports, &(*results)[0].Result[i])
		}
	}
	return reports, nil
}

func (s *ReportStore) LatestReport(ctx context.Context, userID string) (*models.HealthReport, error) {
	sql := "SELECT * FROM health_report WHERE user_id = $user_id ORDER BY created_at DESC LIMIT 1"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.HealthReport](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, models.ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

func (s *ReportStore) RecordDownload(ctx context.Context, reportID string, at time.Time) error {
	sql := "UPDATE $rid SET download_count += 1, last_accessed = $at"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID(tableReport, reportID),
		"at":  at,
	}

	results, err := surrealdb.Query[[]models.HealthReport](ctx, s.db, sql, vars)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *ReportStore) UpdateBookkeeping(ctx context.Context, reportID string, update models.ReportUpdate) (*models.HealthReport, error) {
	rid := surrealmodels.NewRecordID(tableReport, reportID)
	vars := map[string]any{"rid": rid}

	var sets []string
	if update.Starred != nil {
		sets = append(sets, "starred = $starred")
		vars["starred"] = *update.Starred
	}
	if update.Tags != nil {
		sets = append(sets, "tags = $tags")
		vars["tags"] = update.Tags
	}
	if len(sets) == 0 {
		return s.GetReport(ctx, reportID)
	}

	sql := "UPDATE $rid SET " + strings.Join(sets, ", ")
	results, err := surrealdb.Query[[]models.HealthReport](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, models.ErrNotFound
	}
	return &(*results)[0].Result[0], nil
}

var _ interfaces.ReportStore = (*ReportStore)(nil)
