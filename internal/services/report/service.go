// Package report generates, renders and exports health consultation reports
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
	"github.com/bobmcallan/vitae/internal/services/health"
)

// Service implements ReportService
type Service struct {
	storage interfaces.StorageManager
	gemini  interfaces.GeminiClient
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a new report service
func NewService(storage interfaces.StorageManager, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		gemini:  gemini,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate computes the body metrics, asks the model for a consultation and
// stores the result. Nothing is stored when the model fails or returns no text.
func (s *Service) Generate(ctx context.Context, userID string, req models.ReportRequest) (*models.HealthReport, error) {
	if req.Height <= 0 || req.Weight <= 0 || req.Age <= 0 {
		return nil, fmt.Errorf("%w: height, weight and age must be positive", models.ErrInvalidInput)
	}
	gender := strings.ToLower(strings.TrimSpace(req.Gender))
	if gender == "" {
		return nil, fmt.Errorf("%w: gender is required", models.ErrInvalidInput)
	}

	bmi, category := health.CalculateBMI(req.Weight, req.Height)
	bmr := health.CalculateBMR(req.Weight, req.Height, req.Age, gender)

	prompt := buildConsultationPrompt(metrics{
		Age:         req.Age,
		Gender:      gender,
		Height:      req.Height,
		Weight:      req.Weight,
		BMI:         bmi,
		BMICategory: category,
		BMR:         bmr,
	})

	s.logger.Info().
		Str("user_id", userID).
		Float64("bmi", bmi).
		Str("bmi_category", category).
		Msg("Generating health report")

	text, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Report generation failed")
		return nil, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response", models.ErrGeneration)
	}

	report := &models.HealthReport{
		ReportID:          uuid.New().String(),
		UserID:            userID,
		Age:               req.Age,
		Gender:            gender,
		Height:            req.Height,
		Weight:            req.Weight,
		BMI:               bmi,
		BMICategory:       category,
		BMR:               bmr,
		AIGeneratedReport: text,
		CreatedAt:         s.now().UTC(),
		Tags:              []string{},
	}

	if err := s.storage.ReportStore().SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	s.logger.Info().Str("report_id", report.ReportID).Str("user_id", userID).Msg("Health report generated")
	return report, nil
}

// History returns the user's reports, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]*models.HealthReport, error) {
	reports, err := s.storage.ReportStore().ListReports(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if reports == nil {
		reports = []*models.HealthReport{}
	}
	return reports, nil
}

// Get returns a report owned by the user.
func (s *Service) Get(ctx context.Context, userID, reportID string) (*models.HealthReport, error) {
	report, err := s.storage.ReportStore().GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	if report.UserID != userID {
		return nil, models.ErrForbidden
	}
	return report, nil
}

// View returns the display structure of an owned report.
func (s *Service) View(ctx context.Context, userID, reportID string) (*models.ReportView, error) {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return BuildView(report), nil
}

// Update applies the user-editable fields of a report.
func (s *Service) Update(ctx context.Context, userID, reportID string, update models.ReportUpdate) (*models.HealthReport, error) {
	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	if update.Starred == nil && update.Tags == nil {
		return report, nil
	}
	if update.Tags != nil {
		update.Tags = normalizeTags(update.Tags)
	}

	updated, err := s.storage.ReportStore().UpdateBookkeeping(ctx, reportID, update)
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return updated, nil
}

// normalizeTags trims, lowercases and deduplicates tags, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Compile-time check
var _ interfaces.ReportService = (*Service)(nil)
