package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pawclinic/internal/domain/users"
)

const usersFile = "users.json"

type userDTO struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UsersRepo persiste las cuentas (rol user) como array JSON. La cuenta owner
// no vive acá: se define por fuera de la lista.
type UsersRepo struct {
	mu   sync.Mutex
	path string
	seed []users.Account
}

// NewUsersRepo siembra el archivo con las cuentas default la primera vez
// que se usa (archivo ausente).
func NewUsersRepo(dir string, seed []users.Account) *UsersRepo {
	return &UsersRepo{
		path: filepath.Join(dir, usersFile),
		seed: seed,
	}
}

func (r *UsersRepo) Create(ctx context.Context, a users.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	records = append(records, userDTO{
		FullName: a.FullName,
		Username: a.Username,
		Password: a.Password,
		Role:     a.Role,
	})
	return saveJSON(r.path, records)
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return users.Account{}, err
	}

	for _, d := range records {
		if strings.EqualFold(strings.TrimSpace(d.Username), strings.TrimSpace(username)) {
			return users.Account{
				FullName: d.FullName,
				Username: d.Username,
				Password: d.Password,
				Role:     d.Role,
			}, nil
		}
	}
	return users.Account{}, users.ErrNotFound
}

func (r *UsersRepo) List(ctx context.Context) ([]users.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make([]users.Account, 0, len(records))
	for _, d := range records {
		out = append(out, users.Account{
			FullName: d.FullName,
			Username: d.Username,
			Password: d.Password,
			Role:     d.Role,
		})
	}
	return out, nil
}

// load siembra los defaults si el archivo todavía no existe.
func (r *UsersRepo) load() ([]userDTO, error) {
	if _, err := os.Stat(r.path); err != nil && os.IsNotExist(err) {
		records := make([]userDTO, 0, len(r.seed))
		for _, a := range r.seed {
			records = append(records, userDTO{
				FullName: a.FullName,
				Username: a.Username,
				Password: a.Password,
				Role:     a.Role,
			})
		}
		if err := saveJSON(r.path, records); err != nil {
			return nil, err
		}
		return records, nil
	}

	records := []userDTO{}
	if err := loadJSON(r.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}
