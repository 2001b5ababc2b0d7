package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAge(t *testing.T) {
	now := time.Now()
	rec := &SecurityRecord{LastUpdated: now.Add(-5 * time.Minute)}
	assert.Equal(t, 5*time.Minute, rec.Age(now))

	var missing *SecurityRecord
	assert.Greater(t, missing.Age(now), 100*365*24*time.Hour, "missing record is infinitely old")

	never := &SecurityRecord{}
	assert.Greater(t, never.Age(now), 100*365*24*time.Hour)
}

func TestSparseRecordSerialization(t *testing.T) {
	// A record fetched before any history exists must not serialize
	// phantom zero-valued blocks.
	rec := &SecurityRecord{
		Symbol:      "BHP.AU",
		LastUpdated: time.Now(),
		IsActive:    true,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, "technical_indicators")
	assert.NotContains(t, s, "returns")
	assert.NotContains(t, s, "market_cap")

	var decoded SecurityRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.Indicators)
	assert.Nil(t, decoded.Returns)
	assert.Zero(t, decoded.MarketCap)
}

func TestIndicatorNullability(t *testing.T) {
	rsi := 76.19
	ind := &TechnicalIndicators{
		RSI:   &rsi,
		Trend: TrendBullish,
	}

	data, err := json.Marshal(ind)
	require.NoError(t, err)
	s := string(data)

	assert.True(t, strings.Contains(s, `"rsi":76.19`))
	assert.NotContains(t, s, "sma_20", "unavailable indicators are omitted, not zeroed")

	var decoded TechnicalIndicators
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.RSI)
	assert.Equal(t, 76.19, *decoded.RSI)
	assert.Nil(t, decoded.SMA20)
}
