package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/mcpclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/common"
)

// AvailableModels lists the generation models offered by the CLI.
var AvailableModels = []string{
	"llama3:latest",
	"llama2:latest",
	"mistral:latest",
	"phi3:latest",
	"openchat:latest",
}

// SettingsService keeps local preferences such as the selected model.
type SettingsService struct {
	repo metadata.Repository
}

func NewSettingsService(repo metadata.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Models() []string {
	return slices.Clone(AvailableModels)
}

// LoadModel applies the stored model to sess, if one was saved.
func (s *SettingsService) LoadModel(ctx context.Context, sess *session.Session) error {
	model, ok, err := s.repo.Get(ctx, metadata.KeyModel)
	if err != nil {
		return err
	}
	if ok && slices.Contains(AvailableModels, model) {
		sess.SetModel(model)
	}
	return nil
}

// SelectModel validates, stores and applies a model choice.
func (s *SettingsService) SelectModel(ctx context.Context, sess *session.Session, model string) error {
	if !slices.Contains(AvailableModels, model) {
		return fmt.Errorf("unknown model %q: %w", model, common.ErrValidation)
	}
	if err := s.repo.Set(ctx, metadata.KeyModel, model); err != nil {
		return err
	}
	sess.SetModel(model)
	return nil
}
