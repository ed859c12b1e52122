package appointments

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pawclinic/internal/domain/pets"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type testLedger struct {
	counts map[string]int
}

func newTestLedger() *testLedger {
	return &testLedger{counts: map[string]int{}}
}

func (l *testLedger) Count(ctx context.Context, date, slot string) (int, error) {
	return l.counts[date+"|"+slot], nil
}

func (l *testLedger) Reserve(ctx context.Context, date, slot string, max int) (bool, error) {
	k := date + "|" + slot
	if l.counts[k] >= max {
		return false, nil
	}
	l.counts[k]++
	return true, nil
}

type testBookingRepo struct {
	bookings []Booking
}

func (r *testBookingRepo) Append(ctx context.Context, b Booking) error {
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *testBookingRepo) List(ctx context.Context) ([]Booking, error) {
	return append([]Booking(nil), r.bookings...), nil
}

type testRegistry struct {
	visits []string
}

func (t *testRegistry) RecordVisit(ctx context.Context, ownerUsername, petName, petType, petBreed string) (pets.Profile, error) {
	t.visits = append(t.visits, ownerUsername+"/"+petName)
	return pets.Profile{PetID: 1}, nil
}

func newTestService() (*Service, *testLedger, *testBookingRepo, *testRegistry) {
	ledger := newTestLedger()
	repo := &testBookingRepo{}
	registry := &testRegistry{}
	svc := NewService(ledger, repo, registry)
	svc.now = func() time.Time { return time.Date(2025, 10, 16, 9, 30, 0, 0, time.UTC) }
	return svc, ledger, repo, registry
}

func validInput() CreateInput {
	return CreateInput{
		Date: "2025-10-20",
		Slot: "09:00 AM",
		Owner: OwnerInfo{
			Name:   "Alice Perera",
			Mobile: "0712345678",
			NIC:    "991234567V",
			Email:  "alice@example.com",
		},
		Pet: PetInfo{Name: "Rex", Type: "Dog", Breed: "labrador"},
	}
}

// -------------------------
// Tests
// -------------------------

func TestAvailability_EmptyLedger(t *testing.T) {
	svc, _, _, _ := newTestService()

	current, remaining, err := svc.Availability(context.Background(), "2025-10-20", "09:00 AM")
	if err != nil {
		t.Fatalf("Availability error: %v", err)
	}
	if current != 0 || remaining != MaxPerSlot {
		t.Fatalf("expected (0, %d), got (%d, %d)", MaxPerSlot, current, remaining)
	}
}

func TestCreate_FillsSlotThenRejects(t *testing.T) {
	svc, ledger, repo, _ := newTestService()
	in := validInput()

	for i := 0; i < MaxPerSlot; i++ {
		if _, err := svc.Create(context.Background(), "alice", in); err != nil {
			t.Fatalf("booking %d should succeed: %v", i+1, err)
		}
	}

	_, err := svc.Create(context.Background(), "bob", in)
	if !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull, got %v", err)
	}

	// El rechazo no toca ni el ledger ni los registros.
	if got := ledger.counts["2025-10-20|09:00 AM"]; got != MaxPerSlot {
		t.Fatalf("ledger count changed on rejection: %d", got)
	}
	if len(repo.bookings) != MaxPerSlot {
		t.Fatalf("expected %d stored bookings, got %d", MaxPerSlot, len(repo.bookings))
	}

	// Otro horario del mismo día sigue libre.
	other := in
	other.Slot = "10:00 AM"
	if _, err := svc.Create(context.Background(), "bob", other); err != nil {
		t.Fatalf("different slot must remain bookable: %v", err)
	}
}

func TestCreate_BookingIDFormat(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(context.Background(), "alice", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// BK-YYYYMMDD-XXXXXXXX con la fecha de CREACIÓN, no la del turno.
	want := regexp.MustCompile(`^BK-20251016-[0-9A-F]{8}$`)
	if !want.MatchString(b.BookingID) {
		t.Fatalf("unexpected booking id %q", b.BookingID)
	}
}

func TestCreate_RecordsPetVisit(t *testing.T) {
	svc, _, _, registry := newTestService()

	if _, err := svc.Create(context.Background(), "Alice", validInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(registry.visits) != 1 || registry.visits[0] != "alice/Rex" {
		t.Fatalf("expected one visit for alice/Rex, got %v", registry.visits)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, ledger, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"unknown slot", func(in *CreateInput) { in.Slot = "08:00 AM" }},
		{"bad date", func(in *CreateInput) { in.Date = "20/10/2025" }},
		{"missing owner name", func(in *CreateInput) { in.Owner.Name = " " }},
		{"missing nic", func(in *CreateInput) { in.Owner.NIC = "" }},
		{"email without at", func(in *CreateInput) { in.Owner.Email = "alice.example.com" }},
		{"phone too short", func(in *CreateInput) { in.Owner.Mobile = "07123" }},
		{"phone with letters", func(in *CreateInput) { in.Owner.Mobile = "07123A5678" }},
		{"phone not starting with 0", func(in *CreateInput) { in.Owner.Mobile = "7712345678" }},
		{"missing pet name", func(in *CreateInput) { in.Pet.Name = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), "alice", in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	// Nada de lo anterior debe haber reservado cupo.
	if len(ledger.counts) != 0 {
		t.Fatalf("validation failures must not touch the ledger: %v", ledger.counts)
	}
}

func TestCreate_PhoneWithSpacesAccepted(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validInput()
	in.Owner.Mobile = "071 234 5678"
	b, err := svc.Create(context.Background(), "alice", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.Owner.Mobile != "0712345678" {
		t.Fatalf("expected cleaned phone, got %q", b.Owner.Mobile)
	}
}

func TestListMine_NewestFirstOwnOnly(t *testing.T) {
	svc, _, _, _ := newTestService()

	first, _ := svc.Create(context.Background(), "alice", validInput())
	in := validInput()
	in.Slot = "10:00 AM"
	second, _ := svc.Create(context.Background(), "alice", in)
	if _, err := svc.Create(context.Background(), "bob", in); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mine, err := svc.ListMine(context.Background(), "ALICE ")
	if err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(mine))
	}
	if mine[0].BookingID != second.BookingID || mine[1].BookingID != first.BookingID {
		t.Fatalf("expected newest first, got %q then %q", mine[0].BookingID, mine[1].BookingID)
	}
}

func TestListAll_PartitionsAgainstToday(t *testing.T) {
	svc, _, repo, _ := newTestService()

	repo.bookings = []Booking{
		{BookingID: "BK-1", Username: "a", Date: "2025-10-10", Slot: "09:00 AM"},
		{BookingID: "BK-2", Username: "b", Date: "2025-10-16", Slot: "09:00 AM"},
		{BookingID: "BK-3", Username: "c", Date: "2025-10-20", Slot: "09:00 AM"},
		// Fecha rota: cuenta como hoy y por eso entra en upcoming.
		{BookingID: "BK-4", Username: "d", Date: "not-a-date", Slot: "09:00 AM"},
	}

	upcoming, err := svc.ListAll(context.Background(), FilterUpcoming)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 upcoming, got %d: %+v", len(upcoming), upcoming)
	}
	if upcoming[0].BookingID != "BK-3" {
		t.Fatalf("expected farthest date first, got %q", upcoming[0].BookingID)
	}

	past, err := svc.ListAll(context.Background(), FilterPast)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(past) != 1 || past[0].BookingID != "BK-1" {
		t.Fatalf("expected only BK-1 in past, got %+v", past)
	}

	all, err := svc.ListAll(context.Background(), FilterAll)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 total, got %d", len(all))
	}
}

func TestParseFilter(t *testing.T) {
	if ParseFilter("upcoming") != FilterUpcoming {
		t.Fatal("upcoming")
	}
	if ParseFilter(" PAST ") != FilterPast {
		t.Fatal("past")
	}
	if ParseFilter("") != FilterAll || ParseFilter("whatever") != FilterAll {
		t.Fatal("default must be all")
	}
}
