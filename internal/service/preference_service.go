package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/directory"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// PreferenceService exposes the preference operations of the proxy layer.
type PreferenceService interface {
	GetUserPreferences(ctx context.Context, userID string) *model.Preferences
	CreateDefaultPreferences(ctx context.Context, userID string) (*model.Preferences, error)
}

type preferenceService struct {
	api   directory.PreferenceAPI
	reval Revalidator
}

// NewPreferenceService builds a PreferenceService over the directory client.
func NewPreferenceService(api directory.PreferenceAPI, reval Revalidator) PreferenceService {
	return &preferenceService{api: api, reval: reval}
}

// GetUserPreferences returns the user's preferences or nil when there are
// none to show: a non-OK response, a transport failure, and an error field
// inside an OK payload all count as absence.
func (s *preferenceService) GetUserPreferences(ctx context.Context, userID string) *model.Preferences {
	prefs, err := s.api.FetchPreferences(ctx, userID)
	if err != nil {
		log.Printf("get preferences for user %s: %v", userID, err)
		return nil
	}
	return prefs
}

// CreateDefaultPreferences writes the default preference set and returns
// the stored payload. Failures are loud.
func (s *preferenceService) CreateDefaultPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	prefs, err := s.api.PutDefaultPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create default preferences: %w", err)
	}
	s.reval.Revalidate(ctx, userPath(userID))
	return prefs, nil
}
