package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// ValidateAndPrice checks lines against snapshot in order and returns priced lines with their total.
// Quantities of repeated items accumulate against the item's stock.
func ValidateAndPrice(lines []model.LineRequest, snapshot model.MenuSnapshot) ([]model.OrderLine, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, decimal.Zero, domainErrors.ErrEmptyOrder
	}

	requested := make(map[int64]int, len(lines))
	priced := make([]model.OrderLine, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		item, ok := snapshot[line.ItemID]
		if !ok || !item.IsAvailable {
			return nil, decimal.Zero, domainErrors.ItemNotFoundError{ItemID: line.ItemID}
		}

		if line.Quantity > item.Stock-requested[item.ID] {
			return nil, decimal.Zero, domainErrors.InsufficientStockError{
				ItemID:    item.ID,
				ItemName:  item.Name,
				Remaining: item.Stock,
			}
		}

		requested[item.ID] += line.Quantity

		orderLine := model.OrderLine{
			ItemID:    item.ID,
			Quantity:  line.Quantity,
			Name:      item.Name,
			UnitPrice: item.Price,
		}
		priced = append(priced, orderLine)
		total = total.Add(orderLine.Subtotal())
	}

	return priced, total, nil
}
