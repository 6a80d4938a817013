package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "go-campzeo-client/src/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

// Caller is the slice of the API client the repositories use
type Caller interface {
	Do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) error
	DoRaw(ctx context.Context, method string, path string, query url.Values) ([]byte, string, error)
	PutBytes(ctx context.Context, uploadURL string, clientToken string, contentType string, data []byte, out interface{}) error
}

// responses are checked against the wire structs' validate tags
var shapeValidator = validator.New(validator.WithRequiredStructEnabled())

// ID accepts both string and numeric identifiers
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

func idsToStrings(ids []ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, string(id))
		}
	}
	return out
}

// Time accepts RFC 3339 timestamps and bare YYYY-MM-DD dates
type Time struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised time %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

func (t Time) ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// Date is a calendar date. It accepts the same inputs as Time, keeps the
// day the value was written with and encodes as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	var t Time
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	d.Time = calendarDate(t.Time)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// calendarDate drops the clock and zone, keeping the written day at UTC midnight
func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// payload unwraps the "data" envelope and then the first present key
func payload(raw []byte, keys ...string) []byte {
	result := gjson.ParseBytes(raw)
	if data := result.Get("data"); data.Exists() && (data.IsObject() || data.IsArray()) {
		result = data
	}
	if result.IsObject() {
		for _, key := range keys {
			if v := result.Get(key); v.Exists() {
				return []byte(v.Raw)
			}
		}
	}
	return []byte(result.Raw)
}

func decodeList[T any](raw []byte, what string, keys ...string) ([]T, error) {
	body := payload(raw, keys...)
	if len(bytes.TrimSpace(body)) == 0 || string(body) == "null" {
		return []T{}, nil
	}
	if !gjson.ParseBytes(body).IsArray() {
		return nil, shapeError(what, errors.New("expected a list"))
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, shapeError(what, err)
	}
	for i := range items {
		if err := shapeValidator.Struct(&items[i]); err != nil {
			return nil, shapeError(what, err)
		}
	}
	return items, nil
}

func decodeOne[T any](raw []byte, what string, keys ...string) (*T, error) {
	body := payload(raw, keys...)
	if !gjson.ParseBytes(body).IsObject() {
		return nil, shapeError(what, errors.New("expected an object"))
	}
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, shapeError(what, err)
	}
	if err := shapeValidator.Struct(&item); err != nil {
		return nil, shapeError(what, err)
	}
	return &item, nil
}

// firstString returns the first non-empty string found at one of paths
func firstString(raw []byte, paths ...string) string {
	body := payload(raw)
	for _, path := range paths {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func shapeError(what string, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		err = fmt.Errorf("field %s is missing or invalid", ve[0].Namespace())
	}
	return domainErrors.NewAppError(fmt.Errorf("unexpected %s response: %w", what, err), domainErrors.BackendError)
}

func pageQuery(page int, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
