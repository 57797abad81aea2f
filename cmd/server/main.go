package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	exdb "github.com/hakimelghazi/trading-core/db"
	"github.com/hakimelghazi/trading-core/internal/config"
	"github.com/hakimelghazi/trading-core/internal/engine"
	"github.com/hakimelghazi/trading-core/internal/eventlog"
	"github.com/hakimelghazi/trading-core/internal/logging"
	"github.com/hakimelghazi/trading-core/pricefeed"
)

type placeOrderRequest struct {
	ID       string `json:"id"`      // client-supplied
	UserID   string `json:"user_id"` // later: auth
	Market   string `json:"market"`  // "BTC-USD" | "ETH-USD"
	Side     string `json:"side"`    // "BUY" | "SELL"
	Price    int64  `json:"price"`   // for limit
	Quantity int64  `json:"quantity"`
	IsMarket bool   `json:"is_market"`
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) event log store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open event log store", zap.Error(err))
	}
	defer closeStore()

	// 2) engine; Spawn replays the log before returning the handle
	eng, err := engine.Spawn(ctx, cfg.EngineQueueCapacity, store, logger)
	if err != nil {
		logger.Fatal("spawn trading engine", zap.Error(err))
	}

	// 3) price feed
	cache := pricefeed.NewPriceCache()
	go pricefeed.StartPriceUpdater(ctx, pricefeed.NewCoinGeckoFeed(), cache, engine.SupportedMarkets(), cfg.PriceRefreshInterval, logger)

	// 4) router
	r := chi.NewRouter()

	// Hygiene stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))

	writeProblem := func(w http.ResponseWriter, r *http.Request, code int, title, detail string) {
		reqID := middleware.GetReqID(r.Context())
		w.Header().Set("Content-Type", "application/problem+json")
		w.Header().Set("X-Request-ID", reqID)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":      title,
			"status":     code,
			"detail":     detail,
			"instance":   r.URL.Path,
			"request_id": reqID,
		})
	}

	writeEngineError := func(w http.ResponseWriter, r *http.Request, err error) {
		var storeErr *engine.StoreError
		switch {
		case errors.Is(err, engine.ErrDuplicateOrderID):
			writeProblem(w, r, http.StatusConflict, "duplicate_order", err.Error())
		case errors.Is(err, engine.ErrOrderNotFound):
			writeProblem(w, r, http.StatusNotFound, "not_found", "order not found")
		case errors.Is(err, engine.ErrUnsupportedMarket):
			writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, engine.ErrUnserializableInput):
			writeProblem(w, r, http.StatusUnprocessableEntity, "unserializable_input", err.Error())
		case errors.As(err, &storeErr), errors.Is(err, engine.ErrEngineStopped):
			writeProblem(w, r, http.StatusServiceUnavailable, "engine_unavailable", err.Error())
		default:
			writeProblem(w, r, http.StatusInternalServerError, "engine_error", err.Error())
		}
	}

	// POST /orders
	r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}

		place, err := toPlaceOrder(req)
		if err != nil {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		res, placeErr := eng.Place(r.Context(), place)
		if placeErr != nil {
			writeEngineError(w, r, placeErr)
			return
		}

		rid := middleware.GetReqID(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/orders/"+req.ID)
		w.Header().Set("X-Request-ID", rid)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toOrderCreateResponse(req, res, rid))
	})

	// DELETE /orders/{id}?market=BTC-USD
	r.Delete("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		cancel := &engine.CancelOrder{
			ID:     chi.URLParam(r, "id"),
			Market: engine.Market(r.URL.Query().Get("market")),
		}
		if cancel.Market == "" {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", "market required")
			return
		}

		if err := eng.Cancel(r.Context(), cancel); err != nil {
			writeEngineError(w, r, err)
			return
		}
		w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	// GET /prices/{market}
	r.Get("/prices/{market}", func(w http.ResponseWriter, r *http.Request) {
		market := engine.Market(chi.URLParam(r, "market"))
		price, ok := cache.Get(market)
		if !ok {
			writeProblem(w, r, http.StatusNotFound, "not_found", "no price for "+string(market))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
		_ = json.NewEncoder(w).Encode(map[string]any{"market": market, "price": price})
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}

	// drain the engine behind the closed listener
	_ = eng.Shutdown(context.Background())
	<-eng.Done()
}

func openStore(ctx context.Context, cfg *config.Config) (eventlog.Store, func(), error) {
	switch cfg.EventLogBackend {
	case config.BackendPebble:
		s, err := eventlog.NewPebbleStore(cfg.EventLogPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		pool, err := exdb.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		s := eventlog.NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil
	}
}

func toPlaceOrder(req placeOrderRequest) (*engine.PlaceOrder, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.UserID = strings.TrimSpace(req.UserID)
	req.Market = strings.TrimSpace(req.Market)
	req.Side = strings.TrimSpace(req.Side)

	if req.ID == "" || req.UserID == "" || req.Market == "" {
		return nil, errors.New("id, user_id, and market are required")
	}
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, errors.New("id must be a valid uuid")
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return nil, errors.New("user_id must be a valid uuid")
	}
	if req.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if !req.IsMarket && req.Price <= 0 {
		return nil, errors.New("limit orders require positive price")
	}

	side, err := engine.ParseSide(req.Side)
	if err != nil {
		return nil, err
	}

	return &engine.PlaceOrder{
		ID:       req.ID,
		UserID:   req.UserID,
		Market:   engine.Market(req.Market),
		Side:     side,
		Price:    req.Price,
		Quantity: req.Quantity,
		IsMarket: req.IsMarket,
	}, nil
}

type orderCreateResponse struct {
	OrderID    string         `json:"order_id"`
	UserID     string         `json:"user_id"`
	Market     string         `json:"market"`
	Side       string         `json:"side"`
	Quantity   int64          `json:"quantity"`
	Filled     bool           `json:"filled"`
	Remaining  int64          `json:"remaining"`
	Resting    bool           `json:"resting"`
	Trades     []engine.Trade `json:"trades"`
	RequestID  string         `json:"request_id"`
	ReceivedAt time.Time      `json:"received_at"`
}

func toOrderCreateResponse(req placeOrderRequest, res *engine.MatchResult, requestID string) orderCreateResponse {
	remaining := int64(0)
	if res.Remainder != nil {
		remaining = res.Remainder.Remaining
	}
	return orderCreateResponse{
		OrderID:    req.ID,
		UserID:     req.UserID,
		Market:     req.Market,
		Side:       strings.ToUpper(req.Side),
		Quantity:   req.Quantity,
		Filled:     res.OrderFilled,
		Remaining:  remaining,
		Resting:    res.Remainder != nil && !req.IsMarket,
		Trades:     res.Trades,
		RequestID:  requestID,
		ReceivedAt: time.Now().UTC(),
	}
}
