package worker

import (
	"context"
	"strings"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

// MockClickHouseConn records batches prepared against it. Embedding
// driver.Conn fills the untested surface.
type MockClickHouseConn struct {
	driver.Conn

	mu      sync.Mutex
	Batches []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &MockBatch{Query: query}
	m.Batches = append(m.Batches, b)
	return b, nil
}

func (m *MockClickHouseConn) AppendedRows(query string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.Batches {
		if strings.Contains(b.Query, query) {
			total += len(b.AppendedData)
		}
	}
	return total
}

// MockBatch records appended rows.
type MockBatch struct {
	driver.Batch

	mu    sync.Mutex
	Query        string
	AppendedData [][]interface{}
	Sent         bool
}

func (b *MockBatch) Append(v ...interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.AppendedData = append(b.AppendedData, v)
	return nil
}

func (b *MockBatch) Send() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Sent = true
	return nil
}

// MockBoutWriter records upserted bouts.
type MockBoutWriter struct {
	mu    sync.Mutex
	Bouts []*models.Bout
}

func (m *MockBoutWriter) UpsertBout(ctx context.Context, b *models.Bout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Bouts = append(m.Bouts, b)
	return nil
}

func (m *MockBoutWriter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Bouts)
}
