package alarm

import (
	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/providers"
	"alarmbot/internal/structures"
)

const DriverBuntDB = "buntdb"

func NewPersister(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.PersisterInterface, error) {
	if conf.Persistence.Driver == DriverBuntDB {
		logger.Infof(providers.TypeStore, "Using buntdb alarm store at %s", conf.Persistence.FilePath)
		return NewBuntPersister(conf.Persistence.FilePath, logger, metrics)
	}
	logger.Infof(providers.TypeStore, "Using file alarm store at %s", conf.Persistence.FilePath)
	return NewFileManager(conf, compressor, logger, metrics), nil
}
