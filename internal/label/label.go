// Package label renders scannable QR labels for items, matching the label
// format the shop prints and sticks on stock boxes.
package label

import (
	"encoding/json"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

// payload is the JSON embedded in the QR code.
type payload struct {
	Name   string            `json:"name"`
	Date   string            `json:"date"`
	Unit   item.Unit         `json:"unit"`
	Prices map[string]string `json:"prices"`
}

// PNG encodes an item descriptor as a QR code image of the given pixel size.
func PNG(it *item.Item, size int) ([]byte, error) {
	p := payload{
		Name: it.Name,
		Date: it.CreatedDate.Format(time.DateOnly),
		Unit: it.Unit,
		Prices: map[string]string{
			"pcs": item.FormatPrice(it.Prices.Pcs),
			"box": item.FormatPrice(it.Prices.Box),
			"tub": item.FormatPrice(it.Prices.Tub),
		},
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling label payload: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}

	return png, nil
}
