package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly представляет календарную дату без компонента времени
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// Ожидается только строковый JSON литерал вида "2006-01-02"
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected quoted %s string", string(b), dateOnlyLayout)
	}
	t, err := time.Parse(dateOnlyLayout, string(b[1:len(b)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateOnlyLayout) + `"`), nil
}

func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	case []byte:
		t, err := time.Parse(dateOnlyLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
	case string:
		t, err := time.Parse(dateOnlyLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
	default:
		return fmt.Errorf("cannot scan type %T into DateOnly", value)
	}
	return nil
}

func (d DateOnly) String() string {
	return d.Format(dateOnlyLayout)
}

// AddDays возвращает дату, сдвинутую на n календарных дней
func (d DateOnly) AddDays(n int) DateOnly {
	return DateOnly{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil возвращает число календарных дней до другой даты
func (d DateOnly) DaysUntil(other DateOnly) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

// EachDay перебирает даты в полуинтервале [d, until)
func (d DateOnly) EachDay(until DateOnly, fn func(DateOnly) error) error {
	for cur := d; cur.Time.Before(until.Time); cur = cur.AddDays(1) {
		if err := fn(cur); err != nil {
			return err
		}
	}
	return nil
}
