package metadata

import (
	"fmt"
	"strings"
)

type WasteReason string

const (
	WasteExpired     WasteReason = "EXPIRED"
	WasteSpoiled     WasteReason = "SPOILED"
	WasteDamaged     WasteReason = "DAMAGED"
	WastePreparation WasteReason = "PREPARATION"
	WasteMistake     WasteReason = "MISTAKE"
	WasteTheft       WasteReason = "THEFT"
	WasteOther       WasteReason = "OTHER"
)

func (r WasteReason) IsValid() bool {
	switch r {
	case WasteExpired, WasteSpoiled, WasteDamaged, WastePreparation, WasteMistake, WasteTheft, WasteOther:
		return true
	default:
		return false
	}
}

func NewWasteReason(value string) (WasteReason, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	reason := WasteReason(normalized)
	if !reason.IsValid() {
		return reason, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s, %s, %s, %s",
			WasteExpired, WasteSpoiled, WasteDamaged, WastePreparation, WasteMistake, WasteTheft, WasteOther,
		)
	}

	return reason, nil
}

func (r WasteReason) String() string {
	return string(r)
}
