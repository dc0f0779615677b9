package errors_test

import (
	"errors"
	"fmt"
	"testing"

	errs "github.com/edgard/chansearch/internal/errors"
)

func TestCodeAndHint(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantHint   string
		wantSilent bool
	}{
		{
			name:     "plain error",
			err:      cause,
			wantCode: errs.CodeUnknown,
		},
		{
			name:     "validation with hint",
			err:      errs.NewValidationError("query too short", "Please type at least 2 characters to search."),
			wantCode: errs.CodeValidation,
			wantHint: "Please type at least 2 characters to search.",
		},
		{
			name:     "wrapped query syntax",
			err:      fmt.Errorf("search: %w", errs.NewQuerySyntaxError("try simple keywords", cause)),
			wantCode: errs.CodeQuerySyntax,
			wantHint: "try simple keywords",
		},
		{
			name:       "silent denial",
			err:        errs.NewUnauthorizedError("channel not allowed", ""),
			wantCode:   errs.CodeUnauthorized,
			wantSilent: true,
		},
		{
			name:     "explained denial",
			err:      errs.NewUnauthorizedError("channel not allowed", "ask a manager"),
			wantCode: errs.CodeUnauthorized,
			wantHint: "ask a manager",
		},
		{
			name:       "no content",
			err:        errs.NewNoContentError("photo without caption"),
			wantCode:   errs.CodeNoContent,
			wantSilent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := errs.Code(tt.err); got != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got, tt.wantCode)
			}
			if got := errs.Hint(tt.err); got != tt.wantHint {
				t.Errorf("Hint() = %q, want %q", got, tt.wantHint)
			}
			if got := errs.IsSilent(tt.err); got != tt.wantSilent {
				t.Errorf("IsSilent() = %v, want %v", got, tt.wantSilent)
			}
		})
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := errs.NewDatabaseError("failed to upsert message", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(%v, cause) = false, want true", err)
	}
	if err.Error() != "failed to upsert message: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
