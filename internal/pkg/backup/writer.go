package backup

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"

	"github.com/polkiloo/homekitchen/internal/domain/model"
)

// ChecksumExt is appended to the backup file name for its digest file.
const ChecksumExt = ".blake2b"

const (
	fileLayout    = "20060102-150405"
	maxSameSecond = 100
)

// FileWriter stores snapshots as JSON files in a directory.
type FileWriter struct {
	dir string
	now func() time.Time
}

// NewFileWriter creates writer rooted at dir.
func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir, now: time.Now}
}

type fileMenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
	IsAvailable bool            `json:"is_available"`
}

type fileOrderLine struct {
	ItemID    int64           `json:"id"`
	Quantity  int             `json:"qty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
}

type fileOrder struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Address       string          `json:"address"`
	Items         []fileOrderLine `json:"order_items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type file struct {
	TakenAt   time.Time      `json:"taken_at"`
	MenuItems []fileMenuItem `json:"menu_items"`
	Orders    []fileOrder    `json:"orders"`
}

// Write serializes snapshot and returns the path of the created file.
func (w *FileWriter) Write(ctx context.Context, snapshot *model.Snapshot) (string, error) {
	if snapshot == nil {
		return "", fmt.Errorf("nil snapshot")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(toFile(snapshot), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal backup: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path, err := w.create(data)
	if err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	name := filepath.Base(path)

	sum := blake2b.Sum256(data)
	digest := hex.EncodeToString(sum[:]) + "  " + name + "\n"
	if err := os.WriteFile(path+ChecksumExt, []byte(digest), 0o644); err != nil {
		return "", fmt.Errorf("write backup checksum: %w", err)
	}

	return path, nil
}

// create writes data to a new file. Backups taken within the same second get a numeric suffix.
func (w *FileWriter) create(data []byte) (string, error) {
	stamp := w.now().Format(fileLayout)
	for attempt := 0; attempt < maxSameSecond; attempt++ {
		name := fmt.Sprintf("backup-%s.json", stamp)
		if attempt > 0 {
			name = fmt.Sprintf("backup-%s-%d.json", stamp, attempt)
		}
		path := filepath.Join(w.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("too many backups at %s", stamp)
}

// Verify recomputes the digest of a backup file and compares it with the stored one.
func Verify(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	stored, err := os.ReadFile(path + ChecksumExt)
	if err != nil {
		return false, err
	}
	sum := blake2b.Sum256(data)
	want := hex.EncodeToString(sum[:])
	return len(stored) >= len(want) && string(stored[:len(want)]) == want, nil
}

func toFile(s *model.Snapshot) file {
	out := file{
		TakenAt:   s.TakenAt,
		MenuItems: make([]fileMenuItem, 0, len(s.MenuItems)),
		Orders:    make([]fileOrder, 0, len(s.Orders)),
	}
	for _, item := range s.MenuItems {
		out.MenuItems = append(out.MenuItems, fileMenuItem{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Stock:       item.Stock,
			IsAvailable: item.IsAvailable,
		})
	}
	for _, o := range s.Orders {
		fo := fileOrder{
			ID:            o.ID,
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Address:       o.Address,
			Items:         make([]fileOrderLine, 0, len(o.Lines)),
			TotalAmount:   o.TotalAmount,
			Status:        string(o.Status),
			Notes:         o.Notes,
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
		}
		for _, line := range o.Lines {
			fo.Items = append(fo.Items, fileOrderLine{
				ItemID:    line.ItemID,
				Quantity:  line.Quantity,
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
			})
		}
		out.Orders = append(out.Orders, fo)
	}
	return out
}
