package healthdata

import (
	"context"
	"sort"
	"strings"

	domainHealth "sankofa/internal/domain/healthdata"
	"sankofa/internal/logger"
	appErrors "sankofa/pkg/errors"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements community health data use cases
type Service struct {
	recordRepo domainHealth.Repository
}

func NewService(recordRepo domainHealth.Repository) *Service {
	return &Service{recordRepo: recordRepo}
}

func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, req *CreateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	cases, err := normaliseCases(req.DiseaseCases)
	if err != nil {
		return nil, err
	}

	rec := &domainHealth.Record{
		Location:             utils.SanitizeString(req.Location),
		Region:               utils.SanitizeString(req.Region),
		RiskLevel:            domainHealth.RiskLevel(req.RiskLevel),
		DiseaseCases:         cases,
		EnvironmentalFactors: req.EnvironmentalFactors,
		ReportedBy:           reporterID,
	}
	if rec.EnvironmentalFactors == nil {
		rec.EnvironmentalFactors = map[string]interface{}{}
	}
	if req.RecordedAt != nil {
		rec.RecordedAt = req.RecordedAt.UTC()
	}

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("Health record created",
		zap.String("record_id", rec.ID.String()),
		zap.String("location", rec.Location),
		zap.String("risk_level", string(rec.RiskLevel)),
		zap.String("event", "health_record_created"),
	)

	return ToRecordResponse(rec), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*RecordResponse, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(rec), nil
}

func (s *Service) List(ctx context.Context, req *ListRecordsRequest) (*utils.ListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	req.Page, req.PageSize = utils.NormalizePage(req.Page, req.PageSize)

	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return utils.NewListResponse(ToRecordResponses(records), total, req.Page, req.PageSize), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}

	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Location != nil {
		rec.Location = utils.SanitizeString(*req.Location)
	}
	if req.Region != nil {
		rec.Region = utils.SanitizeString(*req.Region)
	}
	if req.RiskLevel != nil {
		rec.RiskLevel = domainHealth.RiskLevel(*req.RiskLevel)
	}
	if req.DiseaseCases != nil {
		cases, err := normaliseCases(req.DiseaseCases)
		if err != nil {
			return nil, err
		}
		rec.DiseaseCases = cases
	}
	if req.EnvironmentalFactors != nil {
		rec.EnvironmentalFactors = req.EnvironmentalFactors
	}
	if req.RecordedAt != nil {
		rec.RecordedAt = req.RecordedAt.UTC()
	}

	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("Health record updated",
		zap.String("record_id", id.String()),
		zap.String("event", "health_record_updated"),
	)

	return ToRecordResponse(rec), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Health record deleted",
		zap.String("record_id", id.String()),
		zap.String("event", "health_record_deleted"),
	)
	return nil
}

// Summary aggregates every record matching the filter: total cases per
// disease, record count per risk level and the locations at high or critical
// risk.
func (s *Service) Summary(ctx context.Context, req *ListRecordsRequest) (*SummaryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(err)
	}
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return Summarise(records), nil
}

func Summarise(records []*domainHealth.Record) *SummaryResponse {
	summary := &SummaryResponse{
		RecordCount:       int64(len(records)),
		CasesByDisease:    make(map[string]int),
		CountByRiskLevel:  make(map[string]int64),
		HighRiskLocations: []string{},
	}

	seen := make(map[string]struct{})
	for _, rec := range records {
		for disease, n := range rec.DiseaseCases {
			summary.CasesByDisease[disease] += n
			summary.TotalCases += n
		}
		summary.CountByRiskLevel[string(rec.RiskLevel)]++

		if rec.IsHighRisk() {
			if _, ok := seen[rec.Location]; !ok {
				seen[rec.Location] = struct{}{}
				summary.HighRiskLocations = append(summary.HighRiskLocations, rec.Location)
			}
		}
	}
	sort.Strings(summary.HighRiskLocations)

	return summary
}

// normaliseCases lower-cases disease names, merges duplicates and rejects negative counts.
func normaliseCases(in map[string]int) (map[string]int, error) {
	out := make(map[string]int, len(in))
	for disease, n := range in {
		if n < 0 {
			return nil, domainHealth.ErrNegativeCaseCount
		}
		key := strings.ToLower(strings.TrimSpace(disease))
		if key == "" {
			continue
		}
		out[key] += n
	}
	return out, nil
}
