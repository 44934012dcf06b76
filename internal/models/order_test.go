package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		if !ValidOrderStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}

	for _, status := range []string{"", "processing", "Delivered", "shipped ", "unknown"} {
		if ValidOrderStatus(status) {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}
