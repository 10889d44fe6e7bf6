// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"
)

const (
	CivilDateLayout   = "2006-01-02"
	DisplayTimeLayout = "03:04 PM"

	// UTC+05:30, dipakai kalau tzdata tidak tersedia
	DefaultOffsetSeconds = 5*3600 + 30*60
)

// Clock sumber "sekarang"; diganti FixedClock di test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock selalu mengembalikan instant yang sama (bisa digeser).
type FixedClock struct{ At time.Time }

func (f *FixedClock) Now() time.Time { return f.At.UTC() }
func (f *FixedClock) Set(t time.Time) { f.At = t }
func (f *FixedClock) Advance(d time.Duration) { f.At = f.At.Add(d) }

// LoadLocation:
// 1) nama IANA (misal "Asia/Kolkata")
// 2) fallback: zona tetap dengan offset fallbackOffset detik
func LoadLocation(name string, fallbackOffset int) *time.Location {
	name = strings.TrimSpace(name)
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("LOCAL", fallbackOffset)
}

// Calendar menerjemahkan instant (UTC) ke tanggal/jam sipil di satu zona tetap.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

func NewCalendar(loc *time.Location, clock Clock) *Calendar {
	if loc == nil {
		loc = time.FixedZone("LOCAL", DefaultOffsetSeconds)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calendar{loc: loc, clock: clock}
}

func (c *Calendar) Location() *time.Location { return c.loc }

// Now selalu UTC
func (c *Calendar) Now() time.Time { return c.clock.Now().UTC() }

// CivilDateOf → "YYYY-MM-DD" di zona sipil, bukan tanggal UTC.
func (c *Calendar) CivilDateOf(t time.Time) string {
	return t.In(c.loc).Format(CivilDateLayout)
}

func (c *Calendar) Today() string { return c.CivilDateOf(c.Now()) }

// DisplayTime → "09:05 AM"
func (c *Calendar) DisplayTime(t time.Time) string {
	return t.In(c.loc).Format(DisplayTimeLayout)
}

// ParseCivilDate validasi "YYYY-MM-DD" dan kembalikan tengah malam di zona sipil.
func (c *Calendar) ParseCivilDate(s string) (time.Time, error) {
	return time.ParseInLocation(CivilDateLayout, strings.TrimSpace(s), c.loc)
}

// DisplayDate render ulang tanggal sipil lewat formatter zona; input tidak valid dikembalikan apa adanya.
func (c *Calendar) DisplayDate(civil string) string {
	d, err := c.ParseCivilDate(civil)
	if err != nil {
		return civil
	}
	return d.Format(CivilDateLayout)
}

// MonthStart tanggal 1 bulan sipil dari t, plus bulan (1–12) & tahunnya.
func (c *Calendar) MonthStart(t time.Time) (string, int, int) {
	local := t.In(c.loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	return first.Format(CivilDateLayout), int(first.Month()), first.Year()
}
