package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/model"
)

// ErrPayloadError marks an OK response whose payload carried an
// application-level error field instead of preferences.
var ErrPayloadError = errors.New("directory payload carried an error field")

// PreferenceAPI defines the preference endpoints of the directory.
type PreferenceAPI interface {
	FetchPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	PutDefaultPreferences(ctx context.Context, userID string) (*model.Preferences, error)
}

// Ensure Client implements PreferenceAPI
var _ PreferenceAPI = (*Client)(nil)

// preferencesEnvelope also captures the error field the backend may embed
// in an otherwise OK payload.
type preferencesEnvelope struct {
	model.Preferences
	Error string `json:"error"`
}

// FetchPreferences returns a user's preferences.
func (c *Client) FetchPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	data, err := c.do(ctx, "get_preferences", http.MethodGet, "/api/v1/users/"+url.PathEscape(userID)+"/preferences", nil)
	if err != nil {
		return nil, err
	}
	var envelope preferencesEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrPayloadError, envelope.Error)
	}
	prefs := envelope.Preferences
	return &prefs, nil
}

// PutDefaultPreferences writes the default preference set for a user and
// returns the stored payload.
func (c *Client) PutDefaultPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	body := struct {
		Theme                string `json:"theme"`
		Language             string `json:"language"`
		NotificationsEnabled bool   `json:"notificationsEnabled"`
	}{model.DefaultTheme, model.DefaultLanguage, true}
	data, err := c.do(ctx, "put_default_preferences", http.MethodPut, "/api/v1/users/"+url.PathEscape(userID)+"/preferences", body)
	if err != nil {
		return nil, err
	}
	var prefs model.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return &prefs, nil
}
