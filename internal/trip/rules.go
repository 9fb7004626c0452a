package trip

import (
	"fmt"
	"net/http"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

var (
	ErrInvalidDateRange = apperror.NewKind(http.StatusBadRequest, apperror.KindInvalidDateRange, "Start date must be before end date")
	ErrCapacityExceeded = apperror.NewKind(http.StatusBadRequest, apperror.KindCapacityExceeded, "nb_passengers exceeds boat capacity")
)

// ValidateDateRanges requires start < end for every range.
// Ranges may overlap each other.
func ValidateDateRanges(ranges []calendar.DateRange) error {
	for i, r := range ranges {
		if r.Start.IsZero() || r.End.IsZero() {
			return apperror.Wrap(ErrInvalidDateRange, http.StatusBadRequest,
				fmt.Sprintf("dates[%d] requires both start and end", i))
		}
		if !r.Start.Before(r.End) {
			return apperror.Wrap(ErrInvalidDateRange, http.StatusBadRequest,
				fmt.Sprintf("Start date must be before end date (dates[%d]: %s to %s)", i, r.Start, r.End))
		}
	}
	return nil
}

// ValidateCapacity requires the trip capacity to fit on the boat.
func ValidateCapacity(requested, boatLimit int) error {
	if requested > boatLimit {
		return apperror.Wrap(ErrCapacityExceeded, http.StatusBadRequest,
			fmt.Sprintf("nb_passengers %d exceeds boat capacity of %d", requested, boatLimit))
	}
	return nil
}

// ValidateReservedSeats requires the trip capacity to cover seats already
// reserved on its busiest date.
func ValidateReservedSeats(requested, reserved int) error {
	if requested < reserved {
		return apperror.Wrap(ErrCapacityExceeded, http.StatusBadRequest,
			fmt.Sprintf("nb_passengers %d is below the %d seats already reserved on one date", requested, reserved))
	}
	return nil
}
