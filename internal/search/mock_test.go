package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockSearchMatchesByName(t *testing.T) {
	t.Parallel()
	products, err := Mock{}.Search(context.Background(), "watch", 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "SmartWatch Pro", products[0].Name)
}

func TestMockSearchMatchesByStore(t *testing.T) {
	t.Parallel()
	products, err := Mock{}.Search(context.Background(), "xiaomi official", 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Xiaomi Smartphone", products[0].Name)
}

func TestMockSearchSamplesOnMiss(t *testing.T) {
	t.Parallel()
	products, err := Mock{}.Search(context.Background(), "submarine", 10)
	require.NoError(t, err)
	require.Len(t, products, 4, "an empty result set is replaced by a sample")
}

func TestMockSearchAppliesLimit(t *testing.T) {
	t.Parallel()
	products, err := Mock{}.Search(context.Background(), "submarine", 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
}
