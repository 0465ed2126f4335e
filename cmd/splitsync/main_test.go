package main

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iho/splitsync/internal/domain"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestResolveStartDateFromFlag(t *testing.T) {
	got, err := resolveStartDate(reader(""), "2024-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("date = %s, want %s", got, want)
	}
}

func TestResolveStartDatePromptsWhenFlagOmitted(t *testing.T) {
	got, err := resolveStartDate(reader("2024-03-01\n"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format(time.DateOnly) != "2024-03-01" {
		t.Fatalf("date = %s, want 2024-03-01", got)
	}
}

func TestResolveStartDateRejectsMalformedInput(t *testing.T) {
	tests := []string{"03/01/2024", "yesterday", "2024-13-40"}
	for _, raw := range tests {
		if _, err := resolveStartDate(reader(""), raw); !errors.Is(err, domain.ErrInvalidStartDate) {
			t.Fatalf("resolveStartDate(%q) error = %v, want ErrInvalidStartDate", raw, err)
		}
	}
}

func TestResolveStartDateRejectsFutureDate(t *testing.T) {
	future := time.Now().UTC().AddDate(1, 0, 0).Format(time.DateOnly)
	if _, err := resolveStartDate(reader(""), future); !errors.Is(err, domain.ErrInvalidStartDate) {
		t.Fatalf("error = %v, want ErrInvalidStartDate", err)
	}
}

func TestResolveStartDateEmptyPrompt(t *testing.T) {
	if _, err := resolveStartDate(reader(""), ""); !errors.Is(err, domain.ErrInvalidStartDate) {
		t.Fatalf("error = %v, want ErrInvalidStartDate", err)
	}
}
