package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/events"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Listing ListingService
	Booking BookingService
}

func NewService(repo *repository.Repository, publisher events.Publisher, config *utils.Config, log *zap.Logger) *Service {
	checker := NewAvailabilityChecker(repo, log)
	return &Service{
		Listing: NewListingService(repo, checker, log),
		Booking: NewBookingService(repo, publisher, config.Booking.PhoneRegion, log),
	}
}
