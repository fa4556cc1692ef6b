package logic

import (
	"context"
	"reflect"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type MockConn struct {
	driver.Conn
	mu            sync.Mutex
	QueryCalls    int
	QueryRowCalls int
	Queries       []string
}

func (m *MockConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	m.mu.Lock()
	m.QueryCalls++
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	return &MockRows{rowIndex: 0}, nil
}

func (m *MockConn) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	m.mu.Lock()
	m.QueryRowCalls++
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	return &MockRow{}
}

func (m *MockConn) allQueries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Queries...)
}

func (m *MockConn) queryRowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryRowCalls
}

type MockRows struct {
	driver.Rows
	rowIndex int
}

func (m *MockRows) Next() bool {
	m.rowIndex++
	// Three grouped win rows
	return m.rowIndex <= 3
}

func (m *MockRows) Scan(dest ...interface{}) error {
	// Finish profile: method, round_finished, wins
	switch m.rowIndex {
	case 1:
		assign(dest[0], "KO/TKO")
		assign(dest[1], uint8(1))
		assign(dest[2], uint64(3))
	case 2:
		assign(dest[0], "Decision - Unanimous")
		assign(dest[1], uint8(3))
		assign(dest[2], uint64(2))
	case 3:
		assign(dest[0], "Submission")
		assign(dest[1], uint8(2))
		assign(dest[2], uint64(1))
	}
	return nil
}

func (m *MockRows) Close() error {
	return nil
}

func (m *MockRows) Err() error {
	return nil
}

type MockRow struct {
	driver.Row
}

func (m *MockRow) Scan(dest ...interface{}) error {
	if len(dest) == 1 {
		// Absorbed strikes: single sum
		assign(dest[0], uint64(350))
		return nil
	}

	// Output stats: bouts, sig_landed, sig_attempts, td_landed,
	// td_attempted, sub_attempts, control, knockdowns
	assign(dest[0], uint64(10))
	assign(dest[1], uint64(400))
	assign(dest[2], uint64(800))
	assign(dest[3], uint64(20))
	assign(dest[4], uint64(50))
	assign(dest[5], uint64(5))
	assign(dest[6], uint64(600))
	assign(dest[7], uint64(7))
	return nil
}

func (m *MockRow) Err() error {
	return nil
}

func assign(dest interface{}, val interface{}) {
	// Simple reflection to assign value to pointer
	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.ValueOf(val))
}
