package contentdomain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	ErrScheduleFieldsMissing = errors.New("title and date are required")
	ErrUnrecognizedDate      = errors.New("could not recognize date")
	ErrInvalidTimezone       = errors.New("invalid timezone")
)

// ScheduleInput is the admin body for a stream event. Date is RFC3339, a plain
// date-time, or a phrase such as "next friday 8pm".
type ScheduleInput struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}

func (in ScheduleInput) Normalize() ScheduleInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	in.Timezone = strings.TrimSpace(in.Timezone)
	return in
}

func (in ScheduleInput) Validate() error {
	if in.Title == "" || in.Date == "" {
		return ErrScheduleFieldsMissing
	}
	return nil
}

var compactTime = regexp.MustCompile(`(\d{1,2})(\d{2})(am|pm)`)

// DateParser turns admin date input into a UTC instant.
type DateParser struct {
	TimezoneMap map[string]string
	when        *when.Parser
}

func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateParser{
		TimezoneMap: map[string]string{
			"UTC": "UTC",
			"PST": "America/Los_Angeles",
			"PDT": "America/Los_Angeles",
			"MST": "America/Denver",
			"MDT": "America/Denver",
			"CST": "America/Chicago",
			"CDT": "America/Chicago",
			"EST": "America/New_York",
			"EDT": "America/New_York",
			"CET": "Europe/Berlin",
			"GMT": "Europe/London",
		},
		when: w,
	}
}

// Location resolves an abbreviation or IANA name. Empty means UTC.
func (p *DateParser) Location(tz string) (*time.Location, error) {
	if tz == "" {
		return time.UTC, nil
	}
	name := tz
	if full, ok := p.TimezoneMap[strings.ToUpper(tz)]; ok {
		name = full
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// Parse interprets input relative to now in tz and returns UTC.
func (p *DateParser) Parse(input, tz string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC(), nil
	}

	loc, err := p.Location(tz)
	if err != nil {
		return time.Time{}, err
	}

	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t.UTC(), nil
		}
	}

	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "today ", "today at ")
	normalized = compactTime.ReplaceAllString(normalized, "$1:$2 $3")

	r, err := p.when.Parse(normalized, now.In(loc))
	if err != nil || r == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnrecognizedDate, input)
	}
	return r.Time.In(loc).Truncate(time.Minute).UTC(), nil
}
