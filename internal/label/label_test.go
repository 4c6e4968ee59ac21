package label_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/label"
)

func TestPNG(t *testing.T) {
	it := &item.Item{
		Name:        "Soap",
		Unit:        item.UnitPcs,
		Prices:      item.PriceSet{Pcs: 500, Box: 4500},
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := label.PNG(it, 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}
