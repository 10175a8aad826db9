package models

// StoredAlarm is the on-disk shape of an alarm. Coin and CoinID only appear
// in files written before alarms carried a canonical symbol.
type StoredAlarm struct {
	Symbol    string  `json:"symbol,omitempty"`
	Coin      string  `json:"coin,omitempty"`
	CoinID    string  `json:"coin_id,omitempty"`
	Target    float64 `json:"target"`
	Direction string  `json:"direction,omitempty"`
}

func (s *StoredAlarm) Legacy() bool {
	return s.Symbol == "" && (s.Coin != "" || s.CoinID != "")
}

// Persister writes the whole owner to alarms mapping to durable storage.
type Persister interface {
	Save(data map[int64][]*Alarm) error
}
