package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
	"github.com/polkiloo/homekitchen/internal/domain/repository"
	"github.com/polkiloo/homekitchen/internal/usecase"
)

const lockQuery = "SELECT id, name, price, description, stock, is_available FROM menu_items WHERE id"

func newSubmitUseCase(storage *Storage) *usecase.OrderUseCase {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return usecase.NewOrderUseCase(storage.UnitOfWork(), storage.Orders(), nil, logger)
}

func submission(lines ...model.LineRequest) model.NewOrder {
	return model.NewOrder{CustomerName: "张三", CustomerPhone: "13800000000", Address: "幸福路 1 号", Lines: lines}
}

func TestSubmitCommitsInsertAndDecrement(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs([]int64{1}).WillReturnRows(
		menuRows().AddRow(int64(1), "宫保鸡丁", decimal.RequireFromString("12.50"), "", int32(3), true),
	)
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("张三", "13800000000", "幸福路 1 号", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "新订单", "").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectExec("UPDATE menu_items SET stock").WithArgs(2, int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	order, err := newSubmitUseCase(storage).Submit(context.Background(), submission(model.LineRequest{ItemID: 1, Quantity: 2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 7 || !order.TotalAmount.Equal(decimal.RequireFromString("25.00")) || !order.CreatedAt.Equal(now) {
		t.Fatalf("unexpected order: %+v", order)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSubmitRollsBackOnValidationFailure(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs([]int64{1}).WillReturnRows(
		menuRows().AddRow(int64(1), "宫保鸡丁", decimal.RequireFromString("12.50"), "", int32(3), true),
	)
	mock.ExpectRollback()

	_, err := newSubmitUseCase(storage).Submit(context.Background(), submission(model.LineRequest{ItemID: 1, Quantity: 5}))
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs([]int64{9}).WillReturnRows(menuRows())
	mock.ExpectRollback()

	_, err = newSubmitUseCase(storage).Submit(context.Background(), submission(model.LineRequest{ItemID: 9, Quantity: 1}))
	if !errors.Is(err, domainErrors.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSubmitRollsBackWhenDecrementGuardFails(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs([]int64{1, 2}).WillReturnRows(
		menuRows().
			AddRow(int64(1), "宫保鸡丁", decimal.RequireFromString("12.50"), "", int32(3), true).
			AddRow(int64(2), "米饭", decimal.RequireFromString("2.00"), "", int32(5), true),
	)
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("张三", "13800000000", "幸福路 1 号", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "新订单", "").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))
	mock.ExpectExec("UPDATE menu_items SET stock").WithArgs(1, int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE menu_items SET stock").WithArgs(2, int64(2)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT name, stock FROM menu_items").WithArgs(int64(2)).WillReturnRows(
		pgxmockv3.NewRows([]string{"name", "stock"}).AddRow("米饭", int32(1)),
	)
	mock.ExpectRollback()

	_, err := newSubmitUseCase(storage).Submit(context.Background(), submission(
		model.LineRequest{ItemID: 1, Quantity: 1},
		model.LineRequest{ItemID: 2, Quantity: 2},
	))
	var stockErr domainErrors.InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.ItemName != "米饭" || stockErr.Remaining != 1 {
		t.Fatalf("expected insufficient stock for 米饭, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSubmitWrapsInsertFailure(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs([]int64{1}).WillReturnRows(
		menuRows().AddRow(int64(1), "宫保鸡丁", decimal.RequireFromString("12.50"), "", int32(3), true),
	)
	diskFull := errors.New("disk full")
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("张三", "13800000000", "幸福路 1 号", pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), "新订单", "").
		WillReturnError(diskFull)
	mock.ExpectRollback()

	_, err := newSubmitUseCase(storage).Submit(context.Background(), submission(model.LineRequest{ItemID: 1, Quantity: 1}))
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) || !errors.Is(err, diskFull) {
		t.Fatalf("expected store unavailable wrapping insert error, got %v", err)
	}

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))
	_, err = newSubmitUseCase(storage).Submit(context.Background(), submission(model.LineRequest{ItemID: 1, Quantity: 1}))
	if !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store unavailable, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestDecrementStockMissingItem(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE menu_items SET stock").WithArgs(1, int64(3)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT name, stock FROM menu_items").WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := storage.UnitOfWork().Do(context.Background(), func(ctx context.Context, tx repository.OrderTx) error {
		return tx.DecrementStock(ctx, 3, 1)
	})
	if !errors.Is(err, domainErrors.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
