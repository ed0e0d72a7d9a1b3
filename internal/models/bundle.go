package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ModelBundle is the stored form of one field's trained model: the serialized
// vectorizer + classifier pair and the number of labels it was fit on. There
// is at most one bundle per field; a retrain replaces it as a whole.
type ModelBundle struct {
	JobField   string    `db:"job_field"`
	Data       RawJSON   `db:"data"`
	LabelCount int       `db:"label_count"`
	TrainedAt  time.Time `db:"trained_at"`
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	*r = RawJSON(bytes)
	return nil
}
