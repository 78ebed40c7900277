package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/vocabmaster/internal/domain"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: pgx.ErrNoRows, want: domain.ErrNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: domain.ErrAlreadyExists},
		{name: "fk violation", in: &pgconn.PgError{Code: "23503"}, want: domain.ErrNotFound},
		{name: "check violation", in: &pgconn.PgError{Code: "23514"}, want: domain.ErrValidation},
		{name: "deadline passes through", in: context.DeadlineExceeded, want: context.DeadlineExceeded},
		{name: "canceled passes through", in: context.Canceled, want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.in, "word", "ephemeral")
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_WrapsUnknownErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	got := MapError(cause, "word", int64(7))
	assert.ErrorIs(t, got, cause)
	assert.Contains(t, got.Error(), "word 7")
}
