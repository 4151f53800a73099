package metadata

import (
	"testing"
)

func TestNewWasteReason(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected WasteReason
		wantErr  bool
	}{
		{"valid expired", "EXPIRED", WasteExpired, false},
		{"lowercase normalized", "spoiled", WasteSpoiled, false},
		{"whitespace trimmed", "  damaged ", WasteDamaged, false},
		{"mixed case", "Theft", WasteTheft, false},
		{"unknown rejected", "EVAPORATED", "", true},
		{"empty rejected", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWasteReason(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWasteReason() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && got != tt.expected {
				t.Errorf("NewWasteReason() = %v, want %v", got, tt.expected)
			}
		})
	}
}
