package alarm

import (
	"fmt"
	"strconv"

	"alarmbot/internal/models"
	"alarmbot/internal/providers"

	json "github.com/goccy/go-json"
)

// decodeStore parses the whole store document. Only a broken top level is an
// error; a bad owner or record is logged and skipped.
func decodeStore(data []byte, logger providers.Logger) (map[int64][]*models.StoredAlarm, error) {
	result := make(map[int64][]*models.StoredAlarm)
	if len(data) == 0 {
		return result, nil
	}

	var owners map[string]json.RawMessage
	if err := json.Unmarshal(data, &owners); err != nil {
		return nil, fmt.Errorf("malformed alarm store: %w", err)
	}

	for key, raw := range owners {
		owner, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.Warnf(providers.TypeStore, "Skipping alarms of malformed owner id %q", key)
			continue
		}
		records, err := decodeOwner(owner, raw, logger)
		if err != nil {
			logger.Warnf(providers.TypeStore, "Skipping alarms of owner %d: %s", owner, err)
			continue
		}
		result[owner] = records
	}

	return result, nil
}

func decodeOwner(owner int64, raw []byte, logger providers.Logger) ([]*models.StoredAlarm, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	records := make([]*models.StoredAlarm, 0, len(items))
	for i, item := range items {
		var rec models.StoredAlarm
		if err := json.Unmarshal(item, &rec); err != nil {
			logger.Warnf(providers.TypeStore, "Skipping malformed alarm #%d of owner %d: %s", i+1, owner, err)
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

func encodeOwner(alarms []*models.Alarm) ([]byte, error) {
	return json.Marshal(alarms)
}

func encodeStore(data map[int64][]*models.Alarm) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
