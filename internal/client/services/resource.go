package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"resourcehub/internal/client/api"
	"resourcehub/internal/client/models"
)

// ResourceService publishes uploaded files as study resources.
type ResourceService interface {
	Create(ctx context.Context, draft models.ResourceDraft) (*models.Resource, error)
}

type resourceService struct {
	client   api.Client
	validate *validator.Validate
}

func NewResourceService(client api.Client) ResourceService {
	return &resourceService{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create validates the draft locally before sending it, so obviously broken
// drafts never hit the network.
func (s *resourceService) Create(ctx context.Context, draft models.ResourceDraft) (*models.Resource, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("invalid resource draft: %w", err)
	}
	return s.client.CreateResource(ctx, draft)
}
