package boat

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
)

// Equipment is an on-board equipment tag.
type Equipment string

const (
	EquipmentFishfinder Equipment = "FISHFINDER"
	EquipmentLivewell   Equipment = "LIVEWELL"
	EquipmentLadder     Equipment = "LADDER"
	EquipmentGPS        Equipment = "GPS"
	EquipmentRodHolders Equipment = "ROD_HOLDERS"
	EquipmentRadio      Equipment = "RADIO"
)

const (
	equipmentSeparator = ","
	equipmentMaxLength = 250
)

var knownEquipment = map[Equipment]struct{}{
	EquipmentFishfinder: {},
	EquipmentLivewell:   {},
	EquipmentLadder:     {},
	EquipmentGPS:        {},
	EquipmentRodHolders: {},
	EquipmentRadio:      {},
}

func (e Equipment) Valid() bool {
	_, ok := knownEquipment[e]
	return ok
}

// DecodeEquipment parses the stored column into tags.
// Entries are trimmed, empty and unknown entries are dropped.
func DecodeEquipment(stored string) []Equipment {
	tags := make([]Equipment, 0)
	seen := make(map[Equipment]struct{})
	for _, part := range strings.Split(stored, equipmentSeparator) {
		tag := Equipment(strings.TrimSpace(part))
		if !tag.Valid() {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// EncodeEquipment serializes tags for storage. Duplicates are removed;
// nil or empty input yields "".
func EncodeEquipment(tags []Equipment) string {
	if len(tags) == 0 {
		return ""
	}
	seen := make(map[Equipment]struct{}, len(tags))
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = Equipment(strings.TrimSpace(string(tag)))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		parts = append(parts, string(tag))
	}
	sort.Strings(parts)
	return strings.Join(parts, equipmentSeparator)
}

// ValidateEquipment rejects tags outside the enumeration.
func ValidateEquipment(tags []Equipment) error {
	for _, tag := range tags {
		if !Equipment(strings.TrimSpace(string(tag))).Valid() {
			return apperror.Wrap(ErrInvalidEquipment, http.StatusBadRequest, fmt.Sprintf("unknown equipment %q", tag))
		}
	}
	if len(EncodeEquipment(tags)) > equipmentMaxLength {
		return ErrEquipmentTooLong
	}
	return nil
}
