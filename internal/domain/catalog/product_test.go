package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates an active product", func(t *testing.T) {
		p, err := NewProduct("tee-blk-m", "Black T-Shirt M", decimal.NewFromInt(120000))

		require.NoError(t, err)
		assert.Equal(t, "TEE-BLK-M", p.SKU, "sku is normalized to upper case")
		assert.True(t, p.IsActive())
		assert.True(t, p.Price.Equal(decimal.NewFromInt(120000)))
	})

	t.Run("rejects empty sku and name", func(t *testing.T) {
		_, err := NewProduct("", "Black T-Shirt M", decimal.NewFromInt(100))
		require.Error(t, err)

		_, err = NewProduct("TEE-BLK-M", "", decimal.NewFromInt(100))
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("TEE-BLK-M", "Black T-Shirt M", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("TEE-BLK-M", "Black T-Shirt M", decimal.NewFromInt(120000))
	require.NoError(t, err)

	require.NoError(t, p.Update("Black Tee Medium", "Cotton, regular fit"))
	assert.Equal(t, "Black Tee Medium", p.Name)
	assert.Equal(t, "Cotton, regular fit", p.Description)
	assert.Equal(t, 2, p.Version)

	assert.Error(t, p.Update("", "desc"))
}

func TestProduct_UpdatePrice(t *testing.T) {
	p, err := NewProduct("TEE-BLK-M", "Black T-Shirt M", decimal.NewFromInt(120000))
	require.NoError(t, err)

	require.NoError(t, p.UpdatePrice(decimal.NewFromInt(99000)))
	assert.True(t, p.Price.Equal(decimal.NewFromInt(99000)))

	assert.Error(t, p.UpdatePrice(decimal.NewFromInt(-1)))
}

func TestProduct_Deactivate(t *testing.T) {
	p, err := NewProduct("TEE-BLK-M", "Black T-Shirt M", decimal.NewFromInt(120000))
	require.NoError(t, err)

	require.NoError(t, p.Deactivate())
	assert.False(t, p.IsActive())
	assert.Error(t, p.Deactivate())
}

func TestProduct_SetCategory(t *testing.T) {
	p, err := NewProduct("TEE-BLK-M", "Black T-Shirt M", decimal.NewFromInt(120000))
	require.NoError(t, err)

	categoryID := uuid.New()
	p.SetCategory(&categoryID)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, categoryID, *p.CategoryID)

	p.SetCategory(nil)
	assert.Nil(t, p.CategoryID)
}
