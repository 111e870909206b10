package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ozgurk/ledgerlens/internal/ledger"
	"github.com/ozgurk/ledgerlens/internal/stats"
	"github.com/ozgurk/ledgerlens/internal/tenant"
	"github.com/ozgurk/ledgerlens/internal/timebucket"
	"github.com/ozgurk/ledgerlens/pkg/config"
	"github.com/ozgurk/ledgerlens/pkg/logger"
	"github.com/ozgurk/ledgerlens/pkg/redis"
)

const dateParamLayout = "2006-01-02"

// StatsHandler handles the analytics API endpoints. It is a thin
// translation layer: parse parameters, call the stats service, encode
// the result. Responses for the heavier aggregates go through the
// Redis cache; the engine itself stays recompute-per-request.
type StatsHandler struct {
	svc    *stats.Service
	cache  *redis.Cache
	cfg    *config.Config
	logger *logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *stats.Service, cache *redis.Cache, cfg *config.Config, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		svc:    svc,
		cache:  cache,
		cfg:    cfg,
		logger: log,
	}
}

// tenantFrom resolves the firm/period selection of a request, falling
// back to the configured defaults when the query omits them.
func (h *StatsHandler) tenantFrom(r *http.Request) (tenant.Context, error) {
	firm := r.URL.Query().Get("firm")
	if firm == "" {
		firm = h.cfg.Ledger.DefaultFirmNo
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = h.cfg.Ledger.DefaultPeriodNo
	}
	return tenant.Resolve(h.cfg.Ledger.TablePrefix, firm, period)
}

// dateRangeFrom parses the optional from/to query parameters.
func dateRangeFrom(r *http.Request) (ledger.DateRange, error) {
	var dr ledger.DateRange

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.ParseInLocation(dateParamLayout, from, time.Local)
		if err != nil {
			return dr, err
		}
		dr.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.ParseInLocation(dateParamLayout, to, time.Local)
		if err != nil {
			return dr, err
		}
		// The parameter is a date; the range covers that whole day.
		dr.To = ledger.EndOfDay(t)
	}
	return dr, nil
}

// GetSummary returns the aggregate card for a tenant and range.
// GET /api/stats/summary?firm=113&period=1&from=2026-01-01&to=2026-01-31
func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dr, err := dateRangeFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	var summary stats.Summary
	key := redis.SummaryKey(tc.FirmNo, tc.PeriodNo, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	err = h.cache.GetOrSet(ctx, key, &summary, h.cfg.Ledger.CacheTTL, func() (interface{}, error) {
		return h.svc.Summary(ctx, tc, dr)
	})
	if err != nil {
		h.respondServiceError(w, err, "summary")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetTrend returns the bucketed inflow/outflow series.
// GET /api/stats/trend?granularity=monthly
func (h *StatsHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dr, err := dateRangeFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	granularity := r.URL.Query().Get("granularity")
	if granularity == "" {
		granularity = string(timebucket.Monthly)
	}
	g, err := timebucket.Parse(granularity)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var points []stats.TrendPoint
	key := redis.TrendKey(tc.FirmNo, tc.PeriodNo, string(g), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	err = h.cache.GetOrSet(ctx, key, &points, h.cfg.Ledger.CacheTTL, func() (interface{}, error) {
		return h.svc.Trend(ctx, tc, g, dr)
	})
	if err != nil {
		h.respondServiceError(w, err, "trend")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"granularity": g,
		"count":       len(points),
		"points":      points,
	})
}

// GetBalance returns the derived balance of one account.
// GET /api/stats/balance/{accountID}
func (h *StatsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dr, err := dateRangeFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	accountID, err := strconv.ParseInt(mux.Vars(r)["accountID"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "account id must be an integer")
		return
	}

	bal, err := h.svc.Balance(ctx, tc, accountID, dr)
	if err != nil {
		h.respondServiceError(w, err, "balance")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"account_id": accountID,
		"balance":    bal,
	})
}

// GetAccounts lists the firm's accounts with derived balances.
// GET /api/stats/accounts
func (h *StatsHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	balances, err := h.svc.AccountBalances(ctx, tc)
	if err != nil {
		h.respondServiceError(w, err, "accounts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(balances),
		"accounts": balances,
	})
}

// GetTopN returns the top-N ranking for a kind.
// GET /api/stats/top/{kind}?n=10
func (h *StatsHandler) GetTopN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dr, err := dateRangeFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	kind, err := stats.ParseRankKind(mux.Vars(r)["kind"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}

	var result interface{}
	key := redis.TopKey(tc.FirmNo, tc.PeriodNo, string(kind), n, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	err = h.cache.GetOrSet(ctx, key, &result, h.cfg.Ledger.CacheTTL, func() (interface{}, error) {
		top, err := h.svc.TopN(ctx, tc, kind, n, dr)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"kind":    kind,
			"count":   len(top),
			"entries": top,
		}, nil
	})
	if err != nil {
		h.respondServiceError(w, err, "top")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetStock returns the derived per-product stock view.
// GET /api/stats/stock
func (h *StatsHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tc, err := h.tenantFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	dr, err := dateRangeFrom(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	levels, err := h.svc.StockLevels(ctx, tc, dr)
	if err != nil {
		h.respondServiceError(w, err, "stock")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(levels),
		"products": levels,
	})
}

// respondServiceError maps engine errors onto HTTP statuses. A failed
// upstream query is the store's fault, not the client's.
func (h *StatsHandler) respondServiceError(w http.ResponseWriter, err error, op string) {
	var upstream *ledger.UpstreamQueryError
	if errors.As(err, &upstream) {
		h.logger.WithError(err).WithField("op", op).Error("Backing store query failed")
		respondError(w, http.StatusBadGateway, "backing store unavailable")
		return
	}

	h.logger.WithError(err).WithField("op", op).Error("Stats request failed")
	respondError(w, http.StatusInternalServerError, "internal error")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
