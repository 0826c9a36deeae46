package backup

import (
	"go.uber.org/fx"

	"github.com/polkiloo/homekitchen/internal/config"
)

// Module provides backup file writer via fx.
var Module = fx.Provide(newFileWriter)

type writerParams struct {
	fx.In

	Config *config.Config
}

func newFileWriter(p writerParams) *FileWriter {
	return NewFileWriter(p.Config.BackupDir)
}
