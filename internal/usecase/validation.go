package usecase

import (
	"strings"

	domainErrors "github.com/polkiloo/homekitchen/internal/domain/errors"
	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// NormalizeNewOrder trims customer fields and checks the submission is well formed.
func NormalizeNewOrder(input model.NewOrder) (model.NewOrder, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.Address = strings.TrimSpace(input.Address)
	input.Notes = strings.TrimSpace(input.Notes)

	if input.CustomerName == "" || input.CustomerPhone == "" || input.Address == "" {
		return input, domainErrors.ErrInvalidInput
	}
	if input.Lines == nil {
		return input, domainErrors.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return input, domainErrors.ErrEmptyOrder
	}
	for _, line := range input.Lines {
		if line.ItemID <= 0 || line.Quantity <= 0 {
			return input, domainErrors.ErrInvalidInput
		}
	}
	return input, nil
}

func distinctItemIDs(lines []model.LineRequest) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}
