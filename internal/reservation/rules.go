package reservation

import (
	"fmt"
	"net/http"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

var (
	ErrCapacityExceeded = apperror.NewKind(http.StatusBadRequest, apperror.KindCapacityExceeded, "Not enough seats available")
	ErrPastDate         = apperror.NewKind(http.StatusBadRequest, apperror.KindPastDate, "reservation_date cannot be in the past")
	ErrDateOutOfRange   = apperror.NewKind(http.StatusBadRequest, apperror.KindDateOutOfRange, "reservation_date is outside the trip dates")
)

// CheckCapacity rejects requested seats that do not fit next to the seats
// already reserved for the same date.
func CheckCapacity(limit, reserved, requested int) error {
	if reserved+requested <= limit {
		return nil
	}
	remaining := max(limit-reserved, 0)
	return apperror.Wrap(ErrCapacityExceeded, http.StatusBadRequest,
		fmt.Sprintf("Not enough seats available: %d remaining", remaining))
}

// CheckDate requires date to be today or later and inside one of ranges.
func CheckDate(date, today calendar.Date, ranges []calendar.DateRange) error {
	if date.Before(today) {
		return apperror.Wrap(ErrPastDate, http.StatusBadRequest,
			fmt.Sprintf("reservation_date %s is before today (%s)", date, today))
	}
	for _, r := range ranges {
		if r.Contains(date) {
			return nil
		}
	}
	return apperror.Wrap(ErrDateOutOfRange, http.StatusBadRequest,
		fmt.Sprintf("reservation_date %s is outside the trip dates", date))
}
