// Package http exposes the REST API over the service layer.
package http

import (
	"container/list"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

// LRU cache with TTL and size-based eviction. Reports are rebuilt from every
// transaction the user holds, so hot dashboards are worth caching briefly.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries and returns how many were dropped.
func (c *lruCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		item := elem.Value.(*cacheItem[T])
		if now.After(item.expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.removeElement(elem)
	}
	return len(toRemove)
}

// Services bundles the application services the server routes to.
type Services struct {
	Auth         *services.AuthService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Reports      *services.ReportService
}

type Server struct {
	http.Server
	svcs        Services
	tokens      *auth.Manager
	repo        *storage.SQLiteRepository
	logger      *log.Logger
	rateLimiter *rateLimiter
	refreshTTL  time.Duration

	// Per-user report caches, invalidated on every write that can change
	// the aggregates.
	txReportCache     *lruCache[core.TransactionReport]
	budgetReportCache *lruCache[core.BudgetReport]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures the router and returns a ready-to-run server.
func NewServer(addr string, svcs Services, tokens *auth.Manager, repo *storage.SQLiteRepository, refreshTTL time.Duration, logger *log.Logger) *Server {
	s := &Server{
		svcs:              svcs,
		tokens:            tokens,
		repo:              repo,
		logger:            logger.WithComponent(log.ComponentHTTP),
		rateLimiter:       newRateLimiter(),
		refreshTTL:        refreshTTL,
		txReportCache:     newLRUCache[core.TransactionReport](500, time.Minute),
		budgetReportCache: newLRUCache[core.BudgetReport](500, time.Minute),
		stopCacheCleanup:  make(chan struct{}),
	}

	r := mux.NewRouter()
	r.Use(s.withObservability)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods(http.MethodPost)

	protected := api.PathPrefix("/").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	protected.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)
	protected.HandleFunc("/transactions", s.handleCreateTransaction).Methods(http.MethodPost)
	protected.HandleFunc("/transactions/{id:[0-9]+}", s.handleGetTransaction).Methods(http.MethodGet)
	protected.HandleFunc("/transactions/{id:[0-9]+}", s.handleUpdateTransaction).Methods(http.MethodPut)
	protected.HandleFunc("/transactions/{id:[0-9]+}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	protected.HandleFunc("/budgets", s.handleListBudgets).Methods(http.MethodGet)
	protected.HandleFunc("/budgets", s.handleCreateBudget).Methods(http.MethodPost)
	protected.HandleFunc("/budgets/{id:[0-9]+}", s.handleGetBudget).Methods(http.MethodGet)
	protected.HandleFunc("/budgets/{id:[0-9]+}", s.handleUpdateBudget).Methods(http.MethodPut)
	protected.HandleFunc("/budgets/{id:[0-9]+}", s.handleDeleteBudget).Methods(http.MethodDelete)

	protected.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	protected.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)
	protected.HandleFunc("/goals/{id:[0-9]+}", s.handleGetGoal).Methods(http.MethodGet)
	protected.HandleFunc("/goals/{id:[0-9]+}", s.handleUpdateGoal).Methods(http.MethodPut)
	protected.HandleFunc("/goals/{id:[0-9]+}", s.handleDeleteGoal).Methods(http.MethodDelete)

	protected.HandleFunc("/reports/transactions", s.handleTransactionReport).Methods(http.MethodGet)
	protected.HandleFunc("/reports/budgets", s.handleBudgetReport).Methods(http.MethodGet)
	protected.HandleFunc("/reports/planner", s.handlePlanner).Methods(http.MethodGet)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go s.startCacheCleanup()
	return s
}

// invalidateReports drops the user's cached reports after a write.
func (s *Server) invalidateReports(userID int64) {
	key := cacheKey(userID)
	s.txReportCache.Delete(key)
	s.budgetReportCache.Delete(key)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := s.txReportCache.CleanExpired() + s.budgetReportCache.CleanExpired()
			if cleaned > 0 {
				s.logger.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
