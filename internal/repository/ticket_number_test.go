package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTicketNumber(t *testing.T) {
	assert.Equal(t, "00001", FormatTicketNumber(1))
	assert.Equal(t, "00042", FormatTicketNumber(42))
	assert.Equal(t, "12345", FormatTicketNumber(12345))
	assert.Equal(t, "123456", FormatTicketNumber(123456))
}

type numberRow struct {
	last *string
}

func (r numberRow) Scan(dest ...any) error {
	*(dest[0].(**string)) = r.last
	return nil
}

// numberQuerier fakes the two statements NextNumber issues: the advisory
// lock Exec and the MAX(numero) query.
type numberQuerier struct {
	last *string
}

func (q numberQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q numberQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (q numberQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return numberRow{last: q.last}
}

func TestNextNumber(t *testing.T) {
	ptr := func(s string) *string { return &s }

	cases := []struct {
		name string
		last *string
		want string
	}{
		{"empty table starts at one", nil, "00001"},
		{"increments max", ptr("00041"), "00042"},
		{"unparseable falls back to one", ptr("CH-XYZ"), "00001"},
		{"grows past padding width", ptr("99999"), "100000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &ticketRepository{db: numberQuerier{last: tc.last}}
			got, err := repo.NextNumber(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
