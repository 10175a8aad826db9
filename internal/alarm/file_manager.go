package alarm

import (
	"os"
	"path/filepath"
	"time"

	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/models"
	"alarmbot/internal/providers"
	"alarmbot/internal/structures"
)

// FileManager keeps the alarm store in a single JSON document, optionally zstd compressed.
type FileManager struct {
	fileName   string
	compress   bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		fileName:   conf.Persistence.FilePath,
		compress:   conf.Persistence.Compress,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (f *FileManager) Save(data map[int64][]*models.Alarm) error {
	start := time.Now()
	err := f.save(data)
	f.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		f.metrics.IncPersistenceErrors()
		f.logger.Errorf(providers.TypeStore, "Error while persisting alarms to %s: %s", f.fileName, err)
		return err
	}
	f.logger.Debugf(providers.TypeStore, "Persisted alarms to file %s", f.fileName)
	return nil
}

func (f *FileManager) save(data map[int64][]*models.Alarm) error {
	payload, err := encodeStore(data)
	if err != nil {
		return err
	}
	if f.compress {
		payload, err = f.compressor.Compress(payload)
		if err != nil {
			return err
		}
	}

	if err = os.MkdirAll(filepath.Dir(f.fileName), 0755); err != nil {
		return err
	}

	tmpFile := f.fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(payload)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.fileName)
}

// Load returns an empty mapping when the file does not exist yet.
func (f *FileManager) Load() (map[int64][]*models.StoredAlarm, error) {
	data, err := os.ReadFile(f.fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeStore, "No alarm store at %s, starting empty", f.fileName)
			return make(map[int64][]*models.StoredAlarm), nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	return decodeStore(decompressed, f.logger)
}

func (f *FileManager) Close() error {
	f.compressor.Close()
	return nil
}
