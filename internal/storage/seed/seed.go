package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// item mirrors one entry of the menu seed file.
type item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	IsAvailable *bool           `json:"is_available"`
}

// LoadMenu reads menu items from a JSON file. Empty path yields no items.
// Entries without is_available are treated as available.
func LoadMenu(path string) ([]model.MenuItem, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu seed: %w", err)
	}
	var entries []item
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("decode menu seed: %w", err)
	}

	items := make([]model.MenuItem, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if entry.ID <= 0 || entry.Name == "" || entry.Stock < 0 || entry.Price.IsNegative() {
			return nil, fmt.Errorf("invalid menu seed entry %d", entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate menu seed entry %d", entry.ID)
		}
		seen[entry.ID] = struct{}{}

		available := true
		if entry.IsAvailable != nil {
			available = *entry.IsAvailable
		}
		items = append(items, model.MenuItem{
			ID:          entry.ID,
			Name:        entry.Name,
			Price:       entry.Price,
			Description: entry.Description,
			Stock:       entry.Stock,
			IsAvailable: available,
		})
	}
	return items, nil
}
