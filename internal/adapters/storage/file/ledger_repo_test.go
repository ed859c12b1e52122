package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLedgerRepo_MissingFileMeansEmpty(t *testing.T) {
	repo := NewLedgerRepo(t.TempDir())

	n, err := repo.Count(context.Background(), "2025-10-20", "09:00 AM")
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 for missing file, got %d", n)
	}
}

func TestLedgerRepo_ReserveUpToMax(t *testing.T) {
	repo := NewLedgerRepo(t.TempDir())
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		ok, err := repo.Reserve(ctx, "2025-10-20", "09:00 AM", 2)
		if err != nil {
			t.Fatalf("Reserve %d error: %v", i, err)
		}
		if !ok {
			t.Fatalf("Reserve %d should succeed", i)
		}
		n, _ := repo.Count(ctx, "2025-10-20", "09:00 AM")
		if n != i {
			t.Fatalf("expected count %d, got %d", i, n)
		}
	}

	ok, err := repo.Reserve(ctx, "2025-10-20", "09:00 AM", 2)
	if err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	if ok {
		t.Fatal("third reserve must be refused")
	}
	if n, _ := repo.Count(ctx, "2025-10-20", "09:00 AM"); n != 2 {
		t.Fatalf("refusal must not change the count, got %d", n)
	}

	// Otra clave del mismo archivo no se ve afectada.
	if ok, _ := repo.Reserve(ctx, "2025-10-20", "10:00 AM", 2); !ok {
		t.Fatal("a different slot must still be reservable")
	}
}

func TestLedgerRepo_PersistedFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewLedgerRepo(dir)
	ctx := context.Background()

	if _, err := repo.Reserve(ctx, "2025-10-20", "09:00 AM", 2); err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	if _, err := repo.Reserve(ctx, "2025-10-20", "09:00 AM", 2); err != nil {
		t.Fatalf("Reserve error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "booking.txt"))
	if err != nil {
		t.Fatalf("read ledger file: %v", err)
	}
	if got := strings.TrimSpace(string(b)); got != "2025-10-20|09:00 AM|2" {
		t.Fatalf("unexpected ledger line %q", got)
	}
}

func TestLedgerRepo_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"2025-10-20|09:00 AM|1",
		"garbage line without pipes",
		"2025-10-21|10:00 AM|not-a-number",
		"too|many|fields|here",
		"",
		"2025-10-21|11:00 AM|2",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "booking.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	repo := NewLedgerRepo(dir)
	ctx := context.Background()

	if n, _ := repo.Count(ctx, "2025-10-20", "09:00 AM"); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n, _ := repo.Count(ctx, "2025-10-21", "11:00 AM"); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	// La línea con count no numérico se saltea: cuenta como cero.
	if n, _ := repo.Count(ctx, "2025-10-21", "10:00 AM"); n != 0 {
		t.Fatalf("malformed count must read as 0, got %d", n)
	}

	// Reservar sobre el archivo sucio no rompe las claves válidas.
	if ok, err := repo.Reserve(ctx, "2025-10-21", "11:00 AM", 3); err != nil || !ok {
		t.Fatalf("Reserve over dirty file: ok=%v err=%v", ok, err)
	}
	if n, _ := repo.Count(ctx, "2025-10-21", "11:00 AM"); n != 3 {
		t.Fatalf("expected 3 after reserve, got %d", n)
	}
}

func TestLedgerRepo_InflatedCountRefusesReserve(t *testing.T) {
	dir := t.TempDir()
	// Un conteo por encima del máximo (editado a mano) se respeta tal cual.
	if err := os.WriteFile(filepath.Join(dir, "booking.txt"), []byte("2025-10-20|09:00 AM|7\n"), 0o644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}

	repo := NewLedgerRepo(dir)
	ok, err := repo.Reserve(context.Background(), "2025-10-20", "09:00 AM", 2)
	if err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	if ok {
		t.Fatal("inflated slot must refuse new reservations")
	}
	if n, _ := repo.Count(context.Background(), "2025-10-20", "09:00 AM"); n != 7 {
		t.Fatalf("stored count must not be auto-corrected, got %d", n)
	}
}
