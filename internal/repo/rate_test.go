package repo

import (
	"context"
	"testing"

	"github.com/beggab/storechina/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLatestRateEmptySeries(t *testing.T) {
	r := newTestRepo(t)

	_, ok, err := r.LatestRate(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLatestRateReturnsNewest(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.RecordRate(ctx, 11.0, "cbr"))
	require.NoError(t, r.RecordRate(ctx, 12.2, ""))

	rate, ok, err := r.LatestRate(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 12.2, rate)

	var row models.ExchangeRate
	require.NoError(t, r.DB.Order("id_rate DESC").First(&row).Error)
	require.Equal(t, "manual", row.Source, "empty source defaults to manual")
}
