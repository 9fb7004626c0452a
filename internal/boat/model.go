package boat

import (
	"net/http"
	"time"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "boat not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidPassengers   = apperror.New(http.StatusBadRequest, "nb_passenger must be positive")
	ErrInvalidSeats        = apperror.New(http.StatusBadRequest, "nb_seat must not be negative")
	ErrInvalidMotor        = apperror.New(http.StatusBadRequest, "motor must be one of DIESEL, GASOLINE, NOTHING")
	ErrInvalidLicense      = apperror.New(http.StatusBadRequest, "license must be one of COASTAL, INLAND")
	ErrInvalidBoatType     = apperror.New(http.StatusBadRequest, "invalid boat_type")
	ErrInvalidGeo          = apperror.New(http.StatusBadRequest, "latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrCapacityBelowTrips  = apperror.NewKind(http.StatusBadRequest, apperror.KindCapacityExceeded, "boat capacity is below the passengers of a bound trip")
	ErrEquipmentTooLong    = apperror.New(http.StatusBadRequest, "equipment list is too long")
	ErrInvalidEquipment    = apperror.New(http.StatusBadRequest, "unknown equipment")
	ErrInvalidCautionValue = apperror.New(http.StatusBadRequest, "caution must not be negative")
)

type Motor string

const (
	MotorDiesel   Motor = "DIESEL"
	MotorGasoline Motor = "GASOLINE"
	MotorNothing  Motor = "NOTHING"
)

func (m Motor) Valid() bool {
	switch m {
	case MotorDiesel, MotorGasoline, MotorNothing:
		return true
	}
	return false
}

type License string

const (
	LicenseCoastal License = "COASTAL"
	LicenseInland  License = "INLAND"
)

func (l License) Valid() bool {
	return l == LicenseCoastal || l == LicenseInland
}

type Type string

const (
	TypeOpen      Type = "OPEN"
	TypeCabin     Type = "CABIN"
	TypeCatamaran Type = "CATAMARAN"
	TypeVoiler    Type = "VOILER"
	TypeJetski    Type = "JETSKI"
	TypeCanoe     Type = "CANOE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeOpen, TypeCabin, TypeCatamaran, TypeVoiler, TypeJetski, TypeCanoe:
		return true
	}
	return false
}

// Boat is a vessel registered by a licensed user.
type Boat struct {
	ID              string
	OwnerID         string
	Name            string
	Description     string
	Brand           string
	FabricationYear *int
	PhotoURL        *string
	NbPassenger     int
	NbSeat          int
	Port            string
	Latitude        *float64
	Longitude       *float64
	MotorPower      *int
	Motor           Motor
	License         License
	BoatType        Type
	Equipment       []Equipment
	Caution         float64
	CreatedAt       time.Time
}

// Filter defines parameters for listing boats. All criteria are ANDed.
type Filter struct {
	OwnerID            string
	Name               string
	Brand              string
	Port               string
	BoatType           Type
	Motor              Motor
	License            License
	MinPassenger       *int
	MaxPassenger       *int
	MinFabricationYear *int
	MaxFabricationYear *int
	MinCaution         *float64
	MaxCaution         *float64

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
