// internal/core/domain/summary.go
package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// SampleSize is how many lines of each stage output are kept in the summary.
const SampleSize = 10

// StageCount holds the statistics for one stage output file.
type StageCount struct {
	// Name is the key used in the summary, the tool name (e.g. "dnsx")
	Name   string
	Count  int
	Sample []string
}

// Summary is written once at the end of a successful run. Stages keep
// pipeline order and stages whose file did not exist are absent.
type Summary struct {
	Target    string
	Timestamp time.Time
	Stages    []StageCount
}

// Count returns the line count for a stage name.
func (s Summary) Count(name string) (int, bool) {
	for _, st := range s.Stages {
		if st.Name == name {
			return st.Count, true
		}
	}
	return 0, false
}

// MarshalJSON writes target, timestamp, statistics and findings in that
// order, with stage keys in pipeline order. encoding/json would sort map
// keys, so the objects are assembled by hand.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"target":`)
	if err := writeJSON(&buf, s.Target); err != nil {
		return nil, err
	}

	buf.WriteString(`,"timestamp":`)
	if err := writeJSON(&buf, s.Timestamp.Format(time.RFC3339)); err != nil {
		return nil, err
	}

	buf.WriteString(`,"statistics":{`)
	for i, st := range s.Stages {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, st.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, st.Count); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`},"findings":{`)
	for i, st := range s.Stages {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, st.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		sample := st.Sample
		if sample == nil {
			sample = []string{}
		}
		if err := writeJSON(&buf, sample); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}

// writeJSON appends v without HTML escaping, so URLs keep their '&'.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
