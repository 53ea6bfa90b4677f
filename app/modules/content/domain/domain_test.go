package contentdomain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sh4ner/streamerpulse/app/shared/validation"
)

func TestNewsInput_Validate(t *testing.T) {
	tests := []struct {
		name       string
		in         NewsInput
		wantFields []string
	}{
		{name: "text only", in: NewsInput{Text: "Stream at 8"}},
		{name: "text and link", in: NewsInput{Text: "Stream", Link: "https://kick.com/sh4ner"}},
		{name: "blank text", in: NewsInput{Text: "   "}, wantFields: []string{"text"}},
		{name: "relative link", in: NewsInput{Text: "x", Link: "kick.com"}, wantFields: []string{"link"}},
		{name: "both bad", in: NewsInput{Link: "nope"}, wantFields: []string{"text", "link"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize().Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var errs validation.Errors
			if !errors.As(err, &errs) {
				t.Fatalf("expected validation.Errors, got %v", err)
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors, want %d", len(errs), len(tt.wantFields))
			}
			for i, f := range tt.wantFields {
				if errs[i].Field != f {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, f)
				}
			}
		})
	}
}

func TestReviewInput_Validate(t *testing.T) {
	valid := ReviewInput{Title: "Gates of Olympus", Type: "slot", Rating: 4.5, Description: "Fun", Image: "https://cdn.example/a.png"}

	tests := []struct {
		name    string
		mutate  func(*ReviewInput)
		wantErr error
	}{
		{name: "valid url image", mutate: func(*ReviewInput) {}},
		{name: "valid inline image", mutate: func(in *ReviewInput) { in.Image = "data:image/png;base64,AAAA" }},
		{name: "missing title", mutate: func(in *ReviewInput) { in.Title = "" }, wantErr: ErrReviewFieldsMissing},
		{name: "missing rating", mutate: func(in *ReviewInput) { in.Rating = 0 }, wantErr: ErrReviewFieldsMissing},
		{name: "bad type", mutate: func(in *ReviewInput) { in.Type = "sports" }, wantErr: ErrInvalidReviewType},
		{name: "rating too high", mutate: func(in *ReviewInput) { in.Rating = 6 }, wantErr: ErrRatingOutOfRange},
		{name: "rating too low", mutate: func(in *ReviewInput) { in.Rating = 0.5 }, wantErr: ErrRatingOutOfRange},
		{name: "long title", mutate: func(in *ReviewInput) { in.Title = strings.Repeat("a", 101) }, wantErr: ErrTitleTooLong},
		{name: "long description", mutate: func(in *ReviewInput) { in.Description = strings.Repeat("é", 1001) }, wantErr: ErrDescriptionTooLong},
		{name: "relative image", mutate: func(in *ReviewInput) { in.Image = "/img/a.png" }, wantErr: ErrInvalidImageURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRating_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Rating
	}{
		{`{"rating":4}`, 4},
		{`{"rating":"3.5"}`, 3.5},
		{`{"rating":""}`, 0},
	}
	for _, tt := range tests {
		var in ReviewInput
		if err := json.Unmarshal([]byte(tt.raw), &in); err != nil {
			t.Fatalf("%s: %v", tt.raw, err)
		}
		if in.Rating != tt.want {
			t.Errorf("%s: rating = %v, want %v", tt.raw, in.Rating, tt.want)
		}
	}

	var in ReviewInput
	if err := json.Unmarshal([]byte(`{"rating":"five"}`), &in); err == nil {
		t.Errorf("expected error for non-numeric rating")
	}
}

func TestClipInput_Validate(t *testing.T) {
	full := ClipInput{Title: "t", Description: "d", Image: "https://i", ImagePublicID: "p", VideoURL: "https://v"}
	if err := full.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	full.ImagePublicID = " "
	if err := full.Normalize().Validate(); !errors.Is(err, ErrClipFieldsMissing) {
		t.Fatalf("expected ErrClipFieldsMissing, got %v", err)
	}
	if KindShort.Label() != "Short" || KindVideo.Label() != "Video" || ClipKind("x").IsValid() {
		t.Errorf("unexpected kind helpers")
	}
}

func TestDateParser_Parse(t *testing.T) {
	p := NewDateParser()
	now := time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		tz      string
		want    time.Time
		wantErr error
	}{
		{name: "rfc3339", input: "2025-11-01T20:00:00+02:00", want: time.Date(2025, 11, 1, 18, 0, 0, 0, time.UTC)},
		{name: "plain date-time in zone", input: "2025-11-01 20:00", tz: "EST", want: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)},
		{name: "plain date", input: "2025-11-01", want: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)},
		{name: "natural language", input: "Tomorrow 5 PM", tz: "PDT", want: time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)},
		{name: "gibberish", input: "invalid date", wantErr: ErrUnrecognizedDate},
		{name: "unknown zone", input: "tomorrow", tz: "Mars/Olympus", wantErr: ErrInvalidTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input, tt.tz, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleInput_Validate(t *testing.T) {
	if err := (ScheduleInput{Title: "x"}).Validate(); !errors.Is(err, ErrScheduleFieldsMissing) {
		t.Fatalf("expected ErrScheduleFieldsMissing, got %v", err)
	}
	if err := (ScheduleInput{Title: "x", Date: "tomorrow"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
