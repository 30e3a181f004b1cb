package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/encuestas/api/internal/core/ports"
)

type summaryService struct {
	surveyRepo ports.SurveyRepository
	resultRepo ports.ResultRepository
}

func NewSummaryService(surveyRepo ports.SurveyRepository, resultRepo ports.ResultRepository) ports.SummaryService {
	return &summaryService{
		surveyRepo: surveyRepo,
		resultRepo: resultRepo,
	}
}

// SummarizeAll refreshes the materialized option tallies of every survey,
// one goroutine per survey. The first failure is returned after all
// workers finish.
func (s *summaryService) SummarizeAll(ctx context.Context) error {
	surveys, err := s.surveyRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch surveys: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(surveys))

	for _, survey := range surveys {
		wg.Add(1)
		go func(surveyID uuid.UUID) { // passed by value (uuid.UUID is [16]byte) to avoid closure issues
			defer wg.Done()
			if err := s.resultRepo.SummarizeSurvey(ctx, surveyID); err != nil {
				errChan <- fmt.Errorf("failed to summarize survey %s: %w", surveyID, err)
			}
		}(survey.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	return nil
}
