package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/foliohq/folio/internal/common"
	"github.com/foliohq/folio/internal/interfaces"
	"github.com/foliohq/folio/internal/models"
)

var errNotFound = errors.New("record not found")

// mockStore is an in-memory SecurityStore keyed by symbol.
type mockStore struct {
	mu      sync.Mutex
	records map[string]*models.SecurityRecord
	saveErr error
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{records: make(map[string]*models.SecurityRecord)}
}

func (m *mockStore) put(rec *models.SecurityRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.Symbol] = rec
}

func (m *mockStore) get(symbol string) *models.SecurityRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[symbol]
}

func (m *mockStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *mockStore) GetSecurity(_ context.Context, symbol string) (*models.SecurityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[symbol]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

// SaveSecurity round-trips the record through JSON, the way a real
// document store would, so serialization gaps surface in service tests.
func (m *mockStore) SaveSecurity(_ context.Context, record *models.SecurityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var stored models.SecurityRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	m.saves++
	m.records[stored.Symbol] = &stored
	return nil
}

func (m *mockStore) GetSecurityBatch(_ context.Context, symbols []string) ([]*models.SecurityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.SecurityRecord, 0, len(symbols))
	for _, sym := range symbols {
		if rec, ok := m.records[sym]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockStore) FindStaleBefore(_ context.Context, cutoff time.Time) ([]*models.SecurityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.SecurityRecord
	for _, rec := range m.records {
		if rec.IsActive && rec.LastUpdated.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockStore) ListActive(_ context.Context) ([]*models.SecurityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.SecurityRecord
	for _, rec := range m.records {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockStore) Deactivate(_ context.Context, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[symbol]; ok {
		rec.IsActive = false
	}
	return nil
}

// mockManager wraps a mockStore as a StorageManager.
type mockManager struct {
	store *mockStore
}

func (m *mockManager) SecurityStore() interfaces.SecurityStore { return m.store }
func (m *mockManager) Close() error                            { return nil }

// mockClient is a QuoteClient whose behavior is set per test via
// function fields; unset fields fail. Call counts are tracked per
// endpoint.
type mockClient struct {
	mu           sync.Mutex
	quoteCalls   int
	companyCalls int
	summaryCalls int
	historyCalls int

	quoteFn   func(ctx context.Context, symbol string) (*models.RealTimeQuote, error)
	companyFn func(ctx context.Context, symbol string) (*models.CompanyInfo, error)
	summaryFn func(ctx context.Context, symbol string) (*models.SummaryInfo, error)
	historyFn func(ctx context.Context, symbol string) (*models.HistoryResponse, error)
}

func (m *mockClient) counts() (quote, company, summary, history int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quoteCalls, m.companyCalls, m.summaryCalls, m.historyCalls
}

func (m *mockClient) GetQuote(ctx context.Context, symbol string) (*models.RealTimeQuote, error) {
	m.mu.Lock()
	m.quoteCalls++
	fn := m.quoteFn
	m.mu.Unlock()
	if fn == nil {
		return nil, errors.New("quote endpoint unavailable")
	}
	return fn(ctx, symbol)
}

func (m *mockClient) GetCompanyInfo(ctx context.Context, symbol string) (*models.CompanyInfo, error) {
	m.mu.Lock()
	m.companyCalls++
	fn := m.companyFn
	m.mu.Unlock()
	if fn == nil {
		return nil, errors.New("fundamentals endpoint unavailable")
	}
	return fn(ctx, symbol)
}

func (m *mockClient) GetSummary(ctx context.Context, symbol string) (*models.SummaryInfo, error) {
	m.mu.Lock()
	m.summaryCalls++
	fn := m.summaryFn
	m.mu.Unlock()
	if fn == nil {
		return nil, errors.New("summary endpoint unavailable")
	}
	return fn(ctx, symbol)
}

func (m *mockClient) GetHistory(ctx context.Context, symbol string, opts ...interfaces.HistoryOption) (*models.HistoryResponse, error) {
	m.mu.Lock()
	m.historyCalls++
	fn := m.historyFn
	m.mu.Unlock()
	if fn == nil {
		return nil, errors.New("history endpoint unavailable")
	}
	return fn(ctx, symbol)
}

// newTestService builds a Service over the mocks with short test TTLs.
func newTestService(store *mockStore, client *mockClient) *Service {
	config := common.NewDefaultConfig()
	config.Freshness.QuoteTTL = "60s"
	config.Freshness.TrendingTTL = "5m"
	config.Freshness.FetchTimeout = "2s"
	config.Freshness.RefreshTimeout = "5s"

	return NewService(&mockManager{store: store}, client, config, common.NewSilentLogger())
}

// testBars creates an ascending bar series ending today.
func testBars(closes []float64) []models.PriceBar {
	bars := make([]models.PriceBar, len(closes))
	end := time.Now().UTC().Truncate(24 * time.Hour)
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Date:   end.AddDate(0, 0, i-len(closes)+1),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// trendSeries produces count closes moving by step from base.
func trendSeries(count int, step, base float64) []float64 {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = base + float64(i)*step
	}
	return closes
}
