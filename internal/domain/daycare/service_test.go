package daycare

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawclinic/internal/domain/pets"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type testRepo struct {
	reservations []Reservation
}

func (r *testRepo) Append(ctx context.Context, res Reservation) (Reservation, error) {
	next := 1
	for _, existing := range r.reservations {
		if existing.ReservationID >= next {
			next = existing.ReservationID + 1
		}
	}
	res.ReservationID = next
	r.reservations = append(r.reservations, res)
	return res, nil
}

func (r *testRepo) List(ctx context.Context) ([]Reservation, error) {
	return append([]Reservation(nil), r.reservations...), nil
}

type testRegistry struct {
	visits []string
}

func (t *testRegistry) RecordVisit(ctx context.Context, ownerUsername, petName, petType, petBreed string) (pets.Profile, error) {
	t.visits = append(t.visits, ownerUsername+"/"+petName)
	return pets.Profile{PetID: 1}, nil
}

func newTestService() (*Service, *testRepo, *testRegistry) {
	repo := &testRepo{}
	registry := &testRegistry{}
	svc := NewService(repo, registry)
	svc.now = func() time.Time { return time.Date(2025, 10, 16, 9, 30, 0, 0, time.UTC) }
	return svc, repo, registry
}

func halfDayInput() CreateInput {
	return CreateInput{
		PetName:     "Rex",
		Package:     PackageHalfDay,
		Date:        "2025-10-20",
		DropoffTime: "09:00",
		PickupTime:  "13:00",
		FullName:    "Alice Perera",
		NIC:         "991234567V",
		Email:       "alice@example.com",
		Phone:       "0712345678",
		PetType:     "Dog",
	}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_HalfDayHappyPath(t *testing.T) {
	svc, repo, registry := newTestService()

	r, err := svc.Create(context.Background(), "alice", halfDayInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if r.ReservationID != 1 {
		t.Fatalf("expected reservation_id=1, got %d", r.ReservationID)
	}
	if r.Price != PriceHalfDay {
		t.Fatalf("expected flat price %d, got %d", PriceHalfDay, r.Price)
	}
	if r.Days != 1 {
		t.Fatalf("windowed packages must persist days=1, got %d", r.Days)
	}
	if len(repo.reservations) != 1 {
		t.Fatalf("expected 1 stored reservation, got %d", len(repo.reservations))
	}
	if len(registry.visits) != 1 || registry.visits[0] != "alice/Rex" {
		t.Fatalf("expected pet visit recorded, got %v", registry.visits)
	}
}

func TestCreate_ServerSidePriceIgnoresClient(t *testing.T) {
	svc, _, _ := newTestService()

	in := halfDayInput()
	in.Package = PackageOvernight
	in.Days = 3
	in.DropoffTime = ""
	in.PickupTime = ""

	r, err := svc.Create(context.Background(), "alice", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if r.Price != 3*PriceOvernight {
		t.Fatalf("expected %d, got %d", 3*PriceOvernight, r.Price)
	}
	if r.DropoffTime != NoTime || r.PickupTime != NoTime {
		t.Fatalf("missing times must persist as %q, got %q/%q", NoTime, r.DropoffTime, r.PickupTime)
	}
}

func TestCreate_OvernightOptionalTimesMustParse(t *testing.T) {
	svc, _, _ := newTestService()

	in := halfDayInput()
	in.Package = PackageOvernight
	in.Days = 2
	in.DropoffTime = "18:30"
	in.PickupTime = "nope"

	if _, err := svc.Create(context.Background(), "alice", in); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestCreate_Rejections(t *testing.T) {
	svc, repo, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
		want   error
	}{
		{"window exceeded", func(in *CreateInput) { in.PickupTime = "13:01" }, ErrWindowExceeded},
		{"before opening", func(in *CreateInput) { in.DropoffTime = "07:00"; in.PickupTime = "10:00" }, ErrBeforeOpening},
		{"missing pickup", func(in *CreateInput) { in.PickupTime = "" }, ErrBothTimesRequired},
		{"unknown package", func(in *CreateInput) { in.Package = "Weekend" }, ErrUnknownPackage},
		{"overnight zero days", func(in *CreateInput) {
			in.Package = PackageOvernight
			in.Days = 0
			in.DropoffTime = ""
			in.PickupTime = ""
		}, ErrInvalidDays},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := halfDayInput()
			tc.mutate(&in)
			if _, err := svc.Create(context.Background(), "alice", in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if len(repo.reservations) != 0 {
		t.Fatalf("rejections must not persist anything, got %d", len(repo.reservations))
	}
}

func TestCreate_ContactValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing full name", func(in *CreateInput) { in.FullName = "" }},
		{"missing nic", func(in *CreateInput) { in.NIC = " " }},
		{"missing phone", func(in *CreateInput) { in.Phone = "" }},
		{"short phone", func(in *CreateInput) { in.Phone = "0712" }},
		{"phone not starting with 0", func(in *CreateInput) { in.Phone = "7712345678" }},
		{"email without at", func(in *CreateInput) { in.Email = "alice.example.com" }},
		{"missing pet name", func(in *CreateInput) { in.PetName = "" }},
		{"missing date", func(in *CreateInput) { in.Date = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := halfDayInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), "alice", in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreate_EmailOptional(t *testing.T) {
	svc, _, _ := newTestService()

	in := halfDayInput()
	in.Email = ""
	if _, err := svc.Create(context.Background(), "alice", in); err != nil {
		t.Fatalf("empty email must be allowed: %v", err)
	}
}

func TestListMine_SortedByIDOwnOnly(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), "alice", halfDayInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", halfDayInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "ALICE", halfDayInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mine, err := svc.ListMine(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(mine))
	}
	if mine[0].ReservationID != 1 || mine[1].ReservationID != 3 {
		t.Fatalf("expected ids 1 then 3, got %d then %d", mine[0].ReservationID, mine[1].ReservationID)
	}
}

func TestListAll_Partition(t *testing.T) {
	svc, repo, _ := newTestService()

	repo.reservations = []Reservation{
		{ReservationID: 1, Username: "a", Date: "2025-10-10"},
		{ReservationID: 2, Username: "b", Date: "2025-10-16"},
		{ReservationID: 3, Username: "c", Date: "2025-11-01"},
		{ReservationID: 4, Username: "d", Date: "bogus"}, // cuenta como hoy
	}

	upcoming, err := svc.ListAll(context.Background(), FilterUpcoming)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 upcoming, got %d", len(upcoming))
	}

	past, err := svc.ListAll(context.Background(), FilterPast)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(past) != 1 || past[0].ReservationID != 1 {
		t.Fatalf("expected only reservation 1 in past, got %+v", past)
	}
}
