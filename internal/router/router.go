package router

import (
	"database/sql"
	"net/http"
	"os"

	fileadapter "pawclinic/internal/adapters/storage/file"
	pg "pawclinic/internal/adapters/storage/postgres"
	"pawclinic/internal/domain/appointments"
	"pawclinic/internal/domain/daycare"
	"pawclinic/internal/domain/pets"
	"pawclinic/internal/domain/users"
	"pawclinic/internal/middleware"
	"pawclinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, archivos planos en DataDir.
	DB *sql.DB

	// Directorio de los archivos de datos (default "data", o env DATA_DIR).
	DataDir string

	// Cuenta privilegiada; si viene vacía se toma de env
	// OWNER_USERNAME/OWNER_PASSWORD/OWNER_FULL_NAME o de los defaults.
	Owner users.Account

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		usersRepo    users.Repository
		petsRepo     pets.Repository
		ledger       appointments.Ledger
		bookingsRepo appointments.Repository
		daycareRepo  daycare.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to file storage", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		petsRepo = pg.NewPetsRepo(db)
		ledger = pg.NewLedgerRepo(db)
		bookingsRepo = pg.NewBookingsRepo(db)
		daycareRepo = pg.NewDaycareRepo(db)
		log.Info("storage backend: postgres", nil)
	} else {
		dir := opts.DataDir
		if dir == "" {
			dir = os.Getenv("DATA_DIR")
		}
		if dir == "" {
			dir = "data"
		}
		usersRepo = fileadapter.NewUsersRepo(dir, users.DefaultUsers)
		petsRepo = fileadapter.NewPetsRepo(dir)
		ledger = fileadapter.NewLedgerRepo(dir)
		bookingsRepo = fileadapter.NewBookingsRepo(dir)
		daycareRepo = fileadapter.NewDaycareRepo(dir)
		log.Info("storage backend: file", map[string]any{"dir": dir})
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo, ownerAccount(opts.Owner))
	petsSvc := pets.NewService(petsRepo)
	apptSvc := appointments.NewService(ledger, bookingsRepo, petsSvc)
	daycareSvc := daycare.NewService(daycareRepo, petsSvc)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	// La sesión se resuelve contra el store de cuentas.
	r.Use(middleware.AuthContext(usersSvc))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	appointments.RegisterRoutes(r, apptSvc)
	daycare.RegisterRoutes(r, daycareSvc)
	pets.RegisterRoutes(r, petsSvc)

	return r
}

func ownerAccount(owner users.Account) users.Account {
	if owner.Username != "" {
		return owner
	}
	if u := os.Getenv("OWNER_USERNAME"); u != "" {
		return users.Account{
			FullName: os.Getenv("OWNER_FULL_NAME"),
			Username: u,
			Password: os.Getenv("OWNER_PASSWORD"),
			Role:     users.RoleOwner,
		}
	}
	return users.DefaultOwner
}
