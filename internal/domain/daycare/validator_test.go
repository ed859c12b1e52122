package daycare

import (
	"errors"
	"testing"
)

func TestValidateWindow_HalfDay(t *testing.T) {
	cases := []struct {
		name    string
		dropoff string
		pickup  string
		want    error
	}{
		{"exactly four hours", "09:00", "13:00", nil},
		{"shorter window", "10:00", "11:30", nil},
		{"opens at eight", "08:00", "12:00", nil},
		{"one minute over", "09:00", "13:01", ErrWindowExceeded},
		{"before opening", "07:59", "11:00", ErrBeforeOpening},
		{"pickup before dropoff", "09:00", "08:59", ErrPickupBeforeDropoff},
		{"pickup equals dropoff", "10:00", "10:00", nil},
		{"missing pickup", "09:00", "", ErrBothTimesRequired},
		{"missing dropoff", "", "13:00", ErrBothTimesRequired},
		{"garbage time", "9 am", "13:00", ErrInvalidTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(PackageHalfDay, tc.dropoff, tc.pickup)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateWindow(%q, %q) = %v, want %v", tc.dropoff, tc.pickup, err, tc.want)
			}
		})
	}
}

func TestValidateWindow_FullDayAllowsEightHours(t *testing.T) {
	if err := ValidateWindow(PackageFullDay, "08:00", "16:00"); err != nil {
		t.Fatalf("eight hours must be valid for Full Day: %v", err)
	}
	if err := ValidateWindow(PackageFullDay, "08:00", "16:01"); !errors.Is(err, ErrWindowExceeded) {
		t.Fatalf("expected ErrWindowExceeded, got %v", err)
	}
	// La misma ventana que excede Half Day es válida en Full Day.
	if err := ValidateWindow(PackageHalfDay, "08:00", "16:00"); !errors.Is(err, ErrWindowExceeded) {
		t.Fatalf("expected ErrWindowExceeded for Half Day, got %v", err)
	}
}

func TestValidateWindow_OvernightSkipsWindowRules(t *testing.T) {
	// Overnight no es windowed: horarios ausentes o "raros" no se validan acá.
	if err := ValidateWindow(PackageOvernight, "", ""); err != nil {
		t.Fatalf("overnight must skip window validation: %v", err)
	}
	if err := ValidateWindow(PackageOvernight, "23:00", "07:00"); err != nil {
		t.Fatalf("overnight must skip window validation: %v", err)
	}
}

func TestValidateDays(t *testing.T) {
	if err := ValidateDays(PackageOvernight, 0); !errors.Is(err, ErrInvalidDays) {
		t.Fatalf("expected ErrInvalidDays, got %v", err)
	}
	if err := ValidateDays(PackageOvernight, 3); err != nil {
		t.Fatalf("3 days must be valid: %v", err)
	}
	// days es irrelevante para los windowed.
	if err := ValidateDays(PackageHalfDay, 0); err != nil {
		t.Fatalf("days must not matter for windowed packages: %v", err)
	}
}

func TestComputePrice(t *testing.T) {
	cases := []struct {
		pkg  string
		days int
		want int
	}{
		{PackageHalfDay, 1, 700},
		{PackageHalfDay, 5, 700}, // precio plano, days se ignora
		{PackageFullDay, 1, 1200},
		{PackageOvernight, 1, 2200},
		{PackageOvernight, 3, 6600},
		{PackageOvernight, 0, 2200}, // mínimo un día
	}

	for _, tc := range cases {
		if got := ComputePrice(tc.pkg, tc.days); got != tc.want {
			t.Errorf("ComputePrice(%q, %d) = %d, want %d", tc.pkg, tc.days, got, tc.want)
		}
	}
}

func TestIsKnownPackage(t *testing.T) {
	for _, pkg := range []string{PackageHalfDay, PackageFullDay, PackageOvernight} {
		if !IsKnownPackage(pkg) {
			t.Errorf("IsKnownPackage(%q) = false", pkg)
		}
	}
	if IsKnownPackage("Weekend Special") {
		t.Error("unknown package accepted")
	}
}
