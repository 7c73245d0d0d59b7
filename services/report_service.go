package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"esgdashboard/apperrors"
	"esgdashboard/models"
	repository "esgdashboard/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportCompiler turns an initiative and its completeness snapshot into a
// report artifact. Compilation failures propagate to the caller unmasked.
type ReportCompiler interface {
	Compile(ctx context.Context, initiative *models.Initiative, snapshot *models.CompletenessSnapshot) (*models.Report, error)
}

type ReportService interface {
	// RequestReport is the generation gate: it recomputes completeness and
	// compiles only when overall meets the threshold (inclusive). Below the
	// threshold it returns an InsufficientDataError listing every data
	// request still lacking an approved contribution.
	RequestReport(ctx context.Context, initiativeID primitive.ObjectID, orgID, requestedBy string, thresholdOverride *int) (*models.Report, error)
	GetReport(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Report, error)
	GetReportsByInitiative(ctx context.Context, initiativeID primitive.ObjectID, orgID string) ([]models.Report, error)
}

type reportService struct {
	initiativeRepo repository.InitiativeRepository
	reportRepo     repository.ReportRepository
	completeness   CompletenessService
	compiler       ReportCompiler
	threshold      int
	dispatcher     *Dispatcher
}

func NewReportService(
	initiativeRepo repository.InitiativeRepository,
	reportRepo repository.ReportRepository,
	completeness CompletenessService,
	compiler ReportCompiler,
	threshold int,
	dispatcher *Dispatcher,
) ReportService {
	return &reportService{
		initiativeRepo: initiativeRepo,
		reportRepo:     reportRepo,
		completeness:   completeness,
		compiler:       compiler,
		threshold:      threshold,
		dispatcher:     dispatcher,
	}
}

func (s *reportService) RequestReport(ctx context.Context, initiativeID primitive.ObjectID, orgID, requestedBy string, thresholdOverride *int) (*models.Report, error) {
	threshold := s.threshold
	if thresholdOverride != nil {
		if *thresholdOverride < 0 || *thresholdOverride > 100 {
			return nil, apperrors.NewValidationError("threshold must be between 0 and 100")
		}
		threshold = *thresholdOverride
	}

	initiative, err := s.initiativeRepo.GetByID(ctx, initiativeID, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("initiative", initiativeID.Hex())
		}
		return nil, err
	}

	snapshot, err := s.completeness.ComputeCompleteness(ctx, initiativeID)
	if err != nil {
		return nil, err
	}

	if snapshot.Overall < threshold {
		missing, err := s.completeness.MissingItems(ctx, initiativeID)
		if err != nil {
			return nil, err
		}

		s.dispatcher.Publish(EventReportBlocked, map[string]interface{}{
			"initiative_id": initiativeID.Hex(),
			"overall":       snapshot.Overall,
			"threshold":     threshold,
			"missing":       len(missing),
		})

		return nil, &apperrors.InsufficientDataError{
			Overall:   snapshot.Overall,
			Threshold: threshold,
			Missing:   missing,
		}
	}

	report, err := s.compiler.Compile(ctx, initiative, snapshot)
	if err != nil {
		return nil, err
	}

	report.InitiativeID = initiativeID
	report.OrgID = orgID
	report.Completeness = *snapshot
	report.GeneratedAt = time.Now()
	report.GeneratedBy = requestedBy

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(EventReportReady, map[string]interface{}{
		"report_id":     report.ID.Hex(),
		"initiative_id": initiativeID.Hex(),
		"overall":       snapshot.Overall,
	})

	return report, nil
}

func (s *reportService) GetReport(ctx context.Context, id primitive.ObjectID, orgID string) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("report", id.Hex())
		}
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetReportsByInitiative(ctx context.Context, initiativeID primitive.ObjectID, orgID string) ([]models.Report, error) {
	if _, err := s.initiativeRepo.GetByID(ctx, initiativeID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("initiative", initiativeID.Hex())
		}
		return nil, err
	}
	return s.reportRepo.GetByInitiative(ctx, initiativeID)
}

// sectionCompiler is the built-in compiler: it assembles approved
// contributions into one section per ESG category.
type sectionCompiler struct {
	contributionRepo repository.ContributionRepository
	requestRepo      repository.DataRequestRepository
	indicatorRepo    repository.IndicatorRepository
}

func NewSectionCompiler(
	contributionRepo repository.ContributionRepository,
	requestRepo repository.DataRequestRepository,
	indicatorRepo repository.IndicatorRepository,
) ReportCompiler {
	return &sectionCompiler{
		contributionRepo: contributionRepo,
		requestRepo:      requestRepo,
		indicatorRepo:    indicatorRepo,
	}
}

func (c *sectionCompiler) Compile(ctx context.Context, initiative *models.Initiative, snapshot *models.CompletenessSnapshot) (*models.Report, error) {
	contributions, err := c.contributionRepo.GetApprovedByInitiative(ctx, initiative.ID)
	if err != nil {
		return nil, err
	}

	requests, err := c.requestRepo.GetByInitiative(ctx, initiative.ID)
	if err != nil {
		return nil, err
	}
	requestByID := make(map[primitive.ObjectID]models.DataRequest, len(requests))
	indicatorIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, request := range requests {
		requestByID[request.ID] = request
		indicatorIDs = append(indicatorIDs, request.IndicatorID)
	}

	indicatorByID := map[primitive.ObjectID]models.Indicator{}
	if len(indicatorIDs) > 0 {
		indicators, err := c.indicatorRepo.GetByIDs(ctx, indicatorIDs)
		if err != nil {
			return nil, err
		}
		for _, indicator := range indicators {
			indicatorByID[indicator.ID] = indicator
		}
	}

	entries := map[string][]models.ReportEntry{}
	for _, contribution := range contributions {
		request, ok := requestByID[contribution.DataRequestID]
		if !ok {
			continue
		}
		indicator, ok := indicatorByID[request.IndicatorID]
		if !ok {
			continue
		}
		entries[indicator.Category] = append(entries[indicator.Category], models.ReportEntry{
			IndicatorCode:    indicator.Code,
			IndicatorName:    indicator.Name,
			StakeholderGroup: request.StakeholderGroup,
			Value:            contribution.Value,
			Unit:             indicator.Unit,
		})
	}

	sections := []models.ReportSection{}
	for _, category := range []string{models.CategoryEnvironmental, models.CategorySocial, models.CategoryGovernance} {
		categoryEntries := entries[category]
		if len(categoryEntries) == 0 {
			continue
		}
		sort.Slice(categoryEntries, func(i, j int) bool {
			if categoryEntries[i].IndicatorCode != categoryEntries[j].IndicatorCode {
				return categoryEntries[i].IndicatorCode < categoryEntries[j].IndicatorCode
			}
			return categoryEntries[i].StakeholderGroup < categoryEntries[j].StakeholderGroup
		})
		sections = append(sections, models.ReportSection{
			Category: category,
			Entries:  categoryEntries,
		})
	}

	return &models.Report{Sections: sections}, nil
}
