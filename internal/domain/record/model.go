package record

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// timeLayout is the wire format for all timestamps: UTC with microsecond
// precision and an explicit Z suffix.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp wraps time.Time so records always serialize in the fixed
// UTC/microsecond format regardless of how the store returns them.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC truncated to microseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Microsecond)}
}

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(timeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := time.Parse(timeLayout, s)
	if err != nil {
		// Stored values may carry an offset or a different precision.
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
	}
	*t = NewTimestamp(parsed)
	return nil
}

func (t Timestamp) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:   huma.TypeString,
		Format: "date-time",
	}
}

// Record is the sole entity of the service. Note is nil when absent and
// serializes as JSON null. ID is assigned by the store on insert and never
// changes afterwards.
type Record struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Note      *string   `json:"note"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

type ListResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}
