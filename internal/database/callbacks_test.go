package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockMetricsRecorder is a mock implementation of MetricsRecorder for testing
type mockMetricsRecorder struct {
	queries []queryRecord
}

type queryRecord struct {
	operation string
	table     string
	duration  time.Duration
	err       error
}

func (m *mockMetricsRecorder) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.queries = append(m.queries, queryRecord{operation: operation, table: table, duration: duration, err: err})
}

func (m *mockMetricsRecorder) UpdateDBStats(stats interface{}) {}

// testModel is a simple model for testing (string ID for SQLite compatibility)
type testModel struct {
	ID        string `gorm:"type:text;primaryKey"`
	Name      string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (testModel) TableName() string {
	return "test_models"
}

func TestRegisterMetricsCallbacks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testModel{}))

	recorder := &mockMetricsRecorder{}
	RegisterMetricsCallbacks(db, recorder)

	require.NoError(t, db.Create(&testModel{ID: "1", Name: "alpha"}).Error)

	var got testModel
	require.NoError(t, db.First(&got, "id = ?", "1").Error)

	require.NoError(t, db.Model(&testModel{}).Where("id = ?", "1").Update("name", "beta").Error)
	require.NoError(t, db.Delete(&testModel{}, "id = ?", "1").Error)

	operations := make(map[string]int)
	for _, q := range recorder.queries {
		assert.Equal(t, "test_models", q.table)
		assert.GreaterOrEqual(t, q.duration, time.Duration(0))
		operations[q.operation]++
	}

	assert.GreaterOrEqual(t, operations["insert"], 1)
	assert.GreaterOrEqual(t, operations["select"], 1)
	assert.GreaterOrEqual(t, operations["update"], 1)
	assert.GreaterOrEqual(t, operations["delete"], 1)
}
