package adaptor

import (
	"io"
	"net/http"

	"rental-booking/internal/usecase"
	"rental-booking/pkg/apperror"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	Listing *ListingHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Listing: NewListingHandler(service.Listing, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}

// typeErrorSink is a request that carries mistyped fields on to validation
// so they are reported with the rest.
type typeErrorSink interface {
	SetTypeErrors(fields []apperror.FieldError)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	mistyped, err := utils.DecodeJSONFields(body, dst)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if len(mistyped) == 0 {
		return true
	}

	if sink, ok := dst.(typeErrorSink); ok {
		sink.SetTypeErrors(mistyped)
		return true
	}
	appErr := apperror.Validation(mistyped)
	utils.ResponseBadRequest(w, appErr.Message, appErr.FieldMap())
	return false
}

// writeServiceError maps a service error to its status. Storage failures are
// logged with their cause and reported without detail.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := apperror.As(err)

	if appErr.Kind == apperror.KindStorage {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed",
		zap.Error(err),
		zap.String("kind", appErr.Kind.String()),
		zap.String("operation", operation))

	switch appErr.Kind {
	case apperror.KindValidation:
		utils.ResponseBadRequest(w, appErr.Message, appErr.FieldMap())
	default:
		utils.ResponseJSON(w, appErr.HTTPStatus(), appErr.Message, nil)
	}
}
