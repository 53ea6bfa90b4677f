package giveawaydomain

import (
	"errors"
	"testing"
)

func TestSubmission(t *testing.T) {
	tests := []struct {
		name    string
		in      Submission
		want    Submission
		wantErr error
	}{
		{
			name: "normalizes fields",
			in:   Submission{BCUsername: "  Shaner ", BCUserID: " 42 ", Email: " Fan@Example.COM "},
			want: Submission{BCUsername: "Shaner", BCUserID: "42", Email: "fan@example.com"},
		},
		{
			name:    "blank user id",
			in:      Submission{BCUsername: "a", BCUserID: "   ", Email: "a@b.co"},
			want:    Submission{BCUsername: "a", Email: "a@b.co"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "bad email",
			in:      Submission{BCUsername: "a", BCUserID: "1", Email: "nobody"},
			want:    Submission{BCUsername: "a", BCUserID: "1", Email: "nobody"},
			wantErr: ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got != tt.want {
				t.Fatalf("Normalize() = %+v, want %+v", got, tt.want)
			}
			if err := got.Validate(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpinResult(t *testing.T) {
	r := SpinResult{Email: " A@B.CO ", Prize: " $50 "}.Normalize()
	if r.Email != "a@b.co" || r.Prize != "$50" {
		t.Fatalf("unexpected normalization: %+v", r)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (SpinResult{Email: "a@b.co"}).Validate(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestParseContentType(t *testing.T) {
	for _, ok := range []string{"rewards", "rules"} {
		if _, err := ParseContentType(ok); err != nil {
			t.Fatalf("%q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "Rules", "prizes"} {
		if _, err := ParseContentType(bad); !errors.Is(err, ErrInvalidContentType) {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestContentInput_Validate(t *testing.T) {
	in := ContentInput{Type: " rules ", Title: " Be nice ", Description: " really "}.Normalize()
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (ContentInput{Type: "rules", Title: "x"}).Validate(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
