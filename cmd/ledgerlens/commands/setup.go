package commands

import (
	"fmt"
	"time"

	"github.com/ozgurk/ledgerlens/internal/ledger"
	"github.com/ozgurk/ledgerlens/internal/stats"
	"github.com/ozgurk/ledgerlens/internal/tenant"
	"github.com/ozgurk/ledgerlens/pkg/config"
	"github.com/ozgurk/ledgerlens/pkg/database"
	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// env bundles the wired-up dependencies the query commands share.
type env struct {
	cfg *config.Config
	log *logger.Logger
	db  *database.DB
	svc *stats.Service
}

// setup loads config, connects to the backing store and wires the
// stats service. The caller must invoke close().
func setup() (*env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	repo := ledger.NewRepository(db.Pool)
	svc := stats.New(repo, log)

	e := &env{cfg: cfg, log: log, db: db, svc: svc}
	return e, db.Close, nil
}

// tenantContext resolves the partition selected by the global flags,
// falling back to the configured defaults.
func (e *env) tenantContext() (tenant.Context, error) {
	firm := firmNo
	if firm == "" {
		firm = e.cfg.Ledger.DefaultFirmNo
	}
	period := periodNo
	if period == "" {
		period = e.cfg.Ledger.DefaultPeriodNo
	}
	return tenant.Resolve(e.cfg.Ledger.TablePrefix, firm, period)
}

// parseRange parses the from/to flags shared by the query commands.
func parseRange(from, to string) (ledger.DateRange, error) {
	var dr ledger.DateRange

	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return dr, fmt.Errorf("invalid --from: %w", err)
		}
		dr.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return dr, fmt.Errorf("invalid --to: %w", err)
		}
		// The flag is a date; the range covers that whole day.
		dr.To = ledger.EndOfDay(t)
	}
	return dr, nil
}
