package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/stockroom/internal/importer"
	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
)

func TestService_Parse_UnknownFormat(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Parse(importer.Format("xlsx"), strings.NewReader(""))
	assert.Error(t, err)
}

func TestService_Parse_Sheet(t *testing.T) {
	svc := importer.NewService()

	rows, err := svc.Parse(importer.FormatSheet, strings.NewReader("Name,Quantity\nSoap,10\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Soap", rows[0].Name)
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	inv := inventory.NewService(repo, nil)
	svc := importer.NewService()

	existing := &item.Item{
		ID:       uuid.New(),
		Name:     "Soap",
		Quantity: 10,
		Unit:     item.UnitPcs,
		Prices:   item.PriceSet{Pcs: 500},
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []importer.Row{
		{Name: "Soap", Quantity: 5},
		{Name: "Shampoo", Quantity: 3, Unit: item.UnitTub, Prices: item.PriceSet{Tub: 12000}, Date: date},
		{Name: "", Quantity: 1, Unit: item.UnitPcs, Prices: item.PriceSet{Pcs: 100}, Date: date},
	}

	repo.EXPECT().ListItems(gomock.Any(), item.ListFilter{}).Return([]*item.Item{existing}, nil)

	// Row 1: existing name restocks.
	repo.EXPECT().GetItem(gomock.Any(), existing.ID).Return(existing, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	// Row 2: new name creates.
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, it *item.Item) error {
			it.ID = uuid.New()
			return nil
		})
	tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	result := svc.Apply(context.Background(), inv, rows)

	assert.Equal(t, 1, result.Restocked)
	assert.Equal(t, 1, result.Added)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
}
