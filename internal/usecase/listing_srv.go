package usecase

//go:generate mockgen -destination=../adaptor/mocks/listing_srv_mock.go -package=mocks rental-booking/internal/usecase ListingService

import (
	"context"
	"time"

	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	GetAll(ctx context.Context) ([]response.ListingResponse, error)
	GetByID(ctx context.Context, listingID string) (*response.ListingResponse, error)
	Create(ctx context.Context, req *request.CreateListingRequest) (*response.ListingResponse, error)
	CheckAvailability(ctx context.Context, listingID string, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error)
}

type listingService struct {
	repo    *repository.Repository
	checker AvailabilityChecker
	log     *zap.Logger
}

func NewListingService(repo *repository.Repository, checker AvailabilityChecker, log *zap.Logger) ListingService {
	return &listingService{
		repo:    repo,
		checker: checker,
		log:     log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) GetAll(ctx context.Context) ([]response.ListingResponse, error) {
	listings, err := s.repo.Listing.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list listings", err)
	}
	return response.ListingsToResponse(listings), nil
}

func (s *listingService) GetByID(ctx context.Context, listingID string) (*response.ListingResponse, error) {
	listing, err := resolveListing(ctx, s.repo.Listing, listingID)
	if err != nil {
		return nil, err
	}

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) Create(ctx context.Context, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	listing, err := ValidateListing(req)
	if err != nil {
		s.log.Warn("Create listing validation failed", zap.Error(err))
		return nil, err
	}

	listing.ID = uuid.New()
	listing.CreatedAt = time.Now().UTC()

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		return nil, apperror.Storage("create listing", err)
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("title", listing.Title),
	)

	resp := response.ListingToResponse(listing)
	return &resp, nil
}

func (s *listingService) CheckAvailability(ctx context.Context, listingID string, req *request.CheckAvailabilityRequest) (*response.AvailabilityResponse, error) {
	stay, err := ValidateDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	available, err := s.checker.IsAvailable(ctx, listingID, stay.Start, stay.End)
	if err != nil {
		return nil, err
	}
	return &response.AvailabilityResponse{Available: available}, nil
}
