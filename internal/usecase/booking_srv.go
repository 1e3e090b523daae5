package usecase

//go:generate mockgen -destination=../adaptor/mocks/booking_srv_mock.go -package=mocks rental-booking/internal/usecase BookingService

import (
	"context"
	"errors"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperror"
	"rental-booking/pkg/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookings(ctx context.Context) ([]response.BookingResponse, error)
	GetListingBookings(ctx context.Context, listingID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo        *repository.Repository
	publisher   events.Publisher
	phoneRegion string
	now         func() time.Time
	log         *zap.Logger
}

func NewBookingService(repo *repository.Repository, publisher events.Publisher, phoneRegion string, log *zap.Logger) BookingService {
	return &bookingService{
		repo:        repo,
		publisher:   publisher,
		phoneRegion: phoneRegion,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	newBooking, err := ValidateBooking(req, s.phoneRegion)
	if err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	var booking *entity.Booking
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		listing, err := resolveListing(ctx, tx.Listing, newBooking.ListingID)
		if err != nil {
			return err
		}

		// Fast path only; the store rejects a racing insert on its own.
		free, err := rangeFree(ctx, tx.Booking, listing, newBooking.Stay)
		if err != nil {
			return err
		}
		if !free {
			return apperror.Conflict("listing is not available for the selected dates")
		}

		booking = &entity.Booking{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: s.now()},
			ListingID:  listing.ID,
			GuestName:  newBooking.GuestName,
			GuestEmail: newBooking.GuestEmail,
			GuestPhone: newBooking.GuestPhone,
			CheckIn:    newBooking.Stay.Start,
			CheckOut:   newBooking.Stay.End,
			Guests:     newBooking.Guests,
			TotalPrice: listing.Price,
			Status:     entity.BookingStatusPending,
		}

		if err := tx.Booking.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrBookingOverlap) {
				return apperror.Conflict("listing is not available for the selected dates")
			}
			return apperror.Storage("create booking", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(err, newBooking)
		return nil, translate("create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("listing_id", booking.ListingID.String()),
		zap.Time("check_in", booking.CheckIn),
		zap.Time("check_out", booking.CheckOut),
	)
	s.publishCreated(ctx, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, apperror.NotFound("booking", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Storage("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking", bookingID)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list bookings", err)
	}
	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetListingBookings(ctx context.Context, listingID string) ([]response.BookingResponse, error) {
	listing, err := resolveListing(ctx, s.repo.Listing, listingID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByListingID(ctx, listing.ID)
	if err != nil {
		return nil, apperror.Storage("list listing bookings", err)
	}
	return response.BookingsToResponse(bookings), nil
}

// publishCreated never fails the request: the booking is already committed.
func (s *bookingService) publishCreated(ctx context.Context, booking *entity.Booking) {
	event := events.BookingCreated{
		Type:       events.TypeBookingCreated,
		BookingID:  booking.ID.String(),
		ListingID:  booking.ListingID.String(),
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event.ListingID, event); err != nil {
		s.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_id", event.BookingID),
		)
	}
}

func (s *bookingService) logFailure(err error, b *NewBooking) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("listing_id", b.ListingID),
		zap.Time("check_in", b.Stay.Start),
		zap.Time("check_out", b.Stay.End),
	}
	if apperror.KindOf(err) == apperror.KindStorage {
		s.log.Error("Failed to create booking", fields...)
		return
	}
	s.log.Warn("Create booking rejected", fields...)
}

// translate keeps taxonomy errors and turns anything else (begin or commit
// failures) into a Storage error.
func translate(operation string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Storage(operation, err)
}
