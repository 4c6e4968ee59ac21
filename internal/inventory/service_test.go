package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/stockroom/internal/inventory"
	"github.com/MrJamesThe3rd/stockroom/internal/item"
	"github.com/MrJamesThe3rd/stockroom/internal/report"
)

func testItem(qty int) *item.Item {
	return &item.Item{
		ID:          uuid.New(),
		Name:        "Soap",
		Category:    "Toiletries",
		Quantity:    qty,
		Unit:        item.UnitPcs,
		Prices:      item.PriceSet{Pcs: 500, Box: 4500},
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_AddItem(t *testing.T) {
	type args struct {
		params inventory.ItemParams
	}

	validParams := inventory.ItemParams{
		Name:        "Soap",
		Category:    "Toiletries",
		Quantity:    10,
		Unit:        item.UnitPcs,
		Prices:      item.PriceSet{Pcs: 500},
		CreatedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *inventory.MockRepository, tx *inventory.MockTx)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: validParams},
			setupMock: func(m *inventory.MockRepository, tx *inventory.MockTx) {
				m.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, it *item.Item) error {
						it.ID = uuid.New()
						it.CreatedAt = time.Now()
						return nil
					})
				tx.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *report.Entry) error {
						assert.Equal(t, report.ActionNewItem, entry.Action)
						assert.Equal(t, "Soap", entry.ItemName)
						assert.Equal(t, 10, entry.QuantityDelta)
						assert.Equal(t, int64(500), entry.UnitPrice)
						assert.Equal(t, validParams.CreatedDate, entry.Date)
						entry.RecordedAt = time.Now()
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: false,
		},
		{
			name: "EmptyNameNoWrites",
			args: args{params: inventory.ItemParams{
				Quantity:    10,
				Unit:        item.UnitPcs,
				Prices:      item.PriceSet{Pcs: 500},
				CreatedDate: validParams.CreatedDate,
			}},
			wantErr: true,
		},
		{
			name: "ZeroQuantityRejected",
			args: args{params: inventory.ItemParams{
				Name:        "Soap",
				Quantity:    0,
				Unit:        item.UnitPcs,
				Prices:      item.PriceSet{Pcs: 500},
				CreatedDate: validParams.CreatedDate,
			}},
			wantErr: true,
		},
		{
			name: "NoPositivePriceRejected",
			args: args{params: inventory.ItemParams{
				Name:        "Soap",
				Quantity:    10,
				Unit:        item.UnitPcs,
				CreatedDate: validParams.CreatedDate,
			}},
			wantErr: true,
		},
		{
			name: "RepoError",
			args: args{params: validParams},
			setupMock: func(m *inventory.MockRepository, tx *inventory.MockTx) {
				m.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			tx := inventory.NewMockTx(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, tx)
			}

			svc := inventory.NewService(repo, nil)
			got, err := svc.AddItem(context.Background(), tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_EditItem_DoesNotAppendEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(10)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		UpdateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *item.Item) error {
			assert.Equal(t, "Shampoo", updated.Name)
			assert.Equal(t, 10, updated.Quantity)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	got, err := svc.EditItem(context.Background(), it.ID, inventory.EditParams{
		Name:        "Shampoo",
		Category:    it.Category,
		Unit:        item.UnitBox,
		Prices:      item.PriceSet{Box: 4500},
		CreatedDate: it.CreatedDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Shampoo", got.Name)
	assert.Equal(t, item.UnitBox, got.Unit)
}

func TestService_AdjustStock_Restock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	notifier := inventory.NewMockNotifier(ctrl)
	svc := inventory.NewService(repo, notifier)

	it := testItem(10)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		UpdateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *item.Item) error {
			assert.Equal(t, 14, updated.Quantity)
			return nil
		})
	tx.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *report.Entry) error {
			assert.Equal(t, report.ActionRestock, entry.Action)
			assert.Equal(t, 4, entry.QuantityDelta)
			assert.Equal(t, int64(500), entry.UnitPrice)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)
	notifier.EXPECT().Notify(inventory.Event{Action: report.ActionRestock, ItemName: "Soap"})

	res, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID:        it.ID,
		Direction: inventory.DirectionRestock,
		Amount:    4,
	})
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 14, res.Item.Quantity)
}

func TestService_AdjustStock_SoldPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(10)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		UpdateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *item.Item) error {
			assert.Equal(t, 7, updated.Quantity)
			return nil
		})
	tx.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *report.Entry) error {
			assert.Equal(t, report.ActionSold, entry.Action)
			assert.Equal(t, 3, entry.QuantityDelta)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	res, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID:        it.ID,
		Direction: inventory.DirectionSold,
		Amount:    3,
	})
	require.NoError(t, err)
	assert.False(t, res.Removed)
	assert.Equal(t, 7, res.Item.Quantity)
}

func TestService_AdjustStock_RestockSoldRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(10)

	var entries []*report.Entry

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil).Times(2)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil).Times(2)
	tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	tx.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *report.Entry) error {
			entries = append(entries, entry)
			return nil
		}).
		Times(2)
	tx.EXPECT().Commit().Return(nil).Times(2)
	tx.EXPECT().Rollback().Return(nil).Times(2)

	_, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID: it.ID, Direction: inventory.DirectionRestock, Amount: 6,
	})
	require.NoError(t, err)

	res, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID: it.ID, Direction: inventory.DirectionSold, Amount: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Item.Quantity)
	require.Len(t, entries, 2)
	assert.Equal(t, report.ActionRestock, entries[0].Action)
	assert.Equal(t, report.ActionSold, entries[1].Action)
}

func TestService_AdjustStock_TerminalRequiresConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(3)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)

	_, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID:        it.ID,
		Direction: inventory.DirectionSold,
		Amount:    3,
	})
	assert.ErrorIs(t, err, inventory.ErrConfirmationRequired)
}

func TestService_AdjustStock_TerminalClampsDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(3)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DeleteItem(gomock.Any(), it.ID).Return(nil)
	tx.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *report.Entry) error {
			// Selling 10 of 3 on hand logs only the 3 that existed.
			assert.Equal(t, 3, entry.QuantityDelta)
			assert.Equal(t, report.ActionSold, entry.Action)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	res, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID:        it.ID,
		Direction: inventory.DirectionSold,
		Amount:    10,
		Confirmed: true,
	})
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Nil(t, res.Item)
	assert.Equal(t, 3, res.Entry.QuantityDelta)
}

func TestService_AdjustStock_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	svc := inventory.NewService(repo, nil)

	_, err := svc.AdjustStock(context.Background(), inventory.AdjustParams{
		ID:        uuid.New(),
		Direction: inventory.DirectionRestock,
		Amount:    0,
	})
	assert.ErrorIs(t, err, inventory.ErrInvalidAmount)
}

func TestService_BulkAdjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	okItem := testItem(10)
	shortItem := testItem(2)
	shortItem.ID = uuid.New()
	shortItem.Name = "Shampoo"
	missingID := uuid.New()

	lines := []inventory.BulkLine{
		{ID: okItem.ID, Direction: inventory.DirectionRestock, Amount: 5},
		{ID: shortItem.ID, Direction: inventory.DirectionSold, Amount: 3},
		{ID: missingID, Direction: inventory.DirectionSold, Amount: 1},
		{ID: okItem.ID, Direction: inventory.DirectionSold, Amount: 0},
	}

	repo.EXPECT().GetItem(gomock.Any(), okItem.ID).Return(okItem, nil)
	repo.EXPECT().GetItem(gomock.Any(), shortItem.ID).Return(shortItem, nil)
	repo.EXPECT().GetItem(gomock.Any(), missingID).Return(nil, item.ErrNotFound)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	results := svc.BulkAdjust(context.Background(), lines)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, 15, results[0].Result.Item.Quantity)

	assert.ErrorIs(t, results[1].Err, inventory.ErrInsufficientStock)
	assert.ErrorIs(t, results[2].Err, item.ErrNotFound)
	assert.ErrorIs(t, results[3].Err, inventory.ErrInvalidAmount)
}

func TestService_BulkAdjust_ExactSaleIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	tx := inventory.NewMockTx(ctrl)
	svc := inventory.NewService(repo, nil)

	it := testItem(4)

	repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DeleteItem(gomock.Any(), it.ID).Return(nil)
	tx.EXPECT().
		AppendEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *report.Entry) error {
			assert.Equal(t, 4, entry.QuantityDelta)
			return nil
		})
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	results := svc.BulkAdjust(context.Background(), []inventory.BulkLine{
		{ID: it.ID, Direction: inventory.DirectionSold, Amount: 4},
	})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Result.Removed)
}

func TestService_DeleteItem(t *testing.T) {
	t.Run("RequiresConfirmation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		svc := inventory.NewService(repo, nil)

		_, err := svc.DeleteItem(context.Background(), uuid.New(), false)
		assert.ErrorIs(t, err, inventory.ErrConfirmationRequired)
	})

	t.Run("LogsFullQuantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		tx := inventory.NewMockTx(ctrl)
		svc := inventory.NewService(repo, nil)

		it := testItem(7)

		repo.EXPECT().GetItem(gomock.Any(), it.ID).Return(it, nil)
		repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
		tx.EXPECT().DeleteItem(gomock.Any(), it.ID).Return(nil)
		tx.EXPECT().
			AppendEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *report.Entry) error {
				assert.Equal(t, report.ActionDeleted, entry.Action)
				assert.Equal(t, 7, entry.QuantityDelta)
				return nil
			})
		tx.EXPECT().Commit().Return(nil)
		tx.EXPECT().Rollback().Return(nil)

		entry, err := svc.DeleteItem(context.Background(), it.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "Soap", entry.ItemName)
	})
}
