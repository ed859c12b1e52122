package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const ledgerFile = "booking.txt"

// LedgerRepo persiste la ocupación por (fecha, horario) en un archivo de
// texto, una línea por clave: "YYYY-MM-DD|<slot>|<count>".
//
// El mutex hace del check-and-increment un único paso lógico dentro del
// proceso; entre procesos sigue siendo read-then-write (comportamiento
// heredado, ver notas de diseño).
type LedgerRepo struct {
	mu   sync.Mutex
	path string
}

func NewLedgerRepo(dir string) *LedgerRepo {
	return &LedgerRepo{path: filepath.Join(dir, ledgerFile)}
}

func (r *LedgerRepo) Count(ctx context.Context, date, slot string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts, _, err := r.read()
	if err != nil {
		return 0, err
	}
	return counts[key(date, slot)], nil
}

func (r *LedgerRepo) Reserve(ctx context.Context, date, slot string, max int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Releer siempre: nunca confiar en un conteo visto antes.
	counts, order, err := r.read()
	if err != nil {
		return false, err
	}

	k := key(date, slot)
	current := counts[k]
	if current >= max {
		return false, nil
	}

	if _, seen := counts[k]; !seen {
		order = append(order, k)
	}
	counts[k] = current + 1

	if err := r.write(counts, order); err != nil {
		return false, err
	}
	return true, nil
}

// read arma {clave: count} a partir del archivo. Líneas con != 3 campos o
// count no numérico se saltean en silencio; archivo ausente = sin reservas.
func (r *LedgerRepo) read() (map[string]int, []string, error) {
	counts := map[string]int{}
	order := []string{}

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return counts, order, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			continue
		}
		k := key(parts[0], parts[1])
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k] = n
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return counts, order, nil
}

// write reescribe el archivo completo, una línea por clave, en orden estable.
func (r *LedgerRepo) write(counts map[string]int, order []string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	var b strings.Builder
	for _, k := range order {
		date, slot, _ := strings.Cut(k, "|")
		fmt.Fprintf(&b, "%s|%s|%d\n", date, slot, counts[k])
	}
	return os.WriteFile(r.path, []byte(b.String()), 0o644)
}

func key(date, slot string) string {
	return date + "|" + slot
}
