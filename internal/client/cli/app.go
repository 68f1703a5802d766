package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/leavedesk/leavedesk/internal/client/api"
	"github.com/leavedesk/leavedesk/internal/client/auth"
	"github.com/leavedesk/leavedesk/internal/client/config"
	"github.com/leavedesk/leavedesk/internal/client/leave"
	"github.com/leavedesk/leavedesk/internal/client/models"
	"github.com/leavedesk/leavedesk/internal/client/routes"
	"github.com/leavedesk/leavedesk/internal/client/session"
	"github.com/leavedesk/leavedesk/internal/client/storage"
	"github.com/leavedesk/leavedesk/internal/logging"
)

// authService is the slice of auth.Manager the CLI uses.
type authService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, username, password string) (routes.Name, error)
	Logout(ctx context.Context) error
	State() auth.State
	Identity() *models.Identity
	TokenExpiry(ctx context.Context) (time.Time, bool)
	RegisterEmployee(ctx context.Context, nu api.NewUser) (*models.User, error)
	Users(ctx context.Context) ([]models.Identity, error)
	SetUserActive(ctx context.Context, userID int64, active bool) error
}

// leaveService is the slice of leave.Service the CLI uses.
type leaveService interface {
	Submit(ctx context.Context, ident *models.Identity, form leave.SubmitForm) (*models.LeaveRequest, error)
	Own(ctx context.Context, ident *models.Identity) ([]models.LeaveRequest, error)
	All(ctx context.Context, ident *models.Identity) ([]models.LeaveRequest, error)
	Approve(ctx context.Context, ident *models.Identity, id int64) (*models.LeaveRequest, error)
	Reject(ctx context.Context, ident *models.Identity, id int64, reason string) (*models.LeaveRequest, error)
}

type App struct {
	config *config.Config
	auth   authService
	leaves leaveService
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := session.NewSQLiteStore(db)
	gw := api.NewHTTPGateway(cfg.ServerBaseURL, store, cfg.RequestTimeout, log)

	return &App{
		config: cfg,
		auth:   auth.NewManager(gw, store, log),
		leaves: leave.NewService(gw),
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
