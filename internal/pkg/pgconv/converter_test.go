//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestStringPtrRoundTrip(t *testing.T) {
	ref := "cs_test_1"

	assert.Equal(t, pgtype.Text{String: ref, Valid: true}, pgconv.StringPtrToPgtype(&ref))
	assert.Equal(t, pgtype.Text{}, pgconv.StringPtrToPgtype(nil))

	got := pgconv.StringPtrFromPgtype(pgtype.Text{String: ref, Valid: true})
	assert.Equal(t, &ref, got)
	assert.Nil(t, pgconv.StringPtrFromPgtype(pgtype.Text{}))
}

func TestTimePtrRoundTrip(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, pgtype.Timestamptz{Time: paidAt, Valid: true}, pgconv.TimePtrToPgtype(&paidAt))
	assert.Equal(t, pgtype.Timestamptz{}, pgconv.TimePtrToPgtype(nil))

	got := pgconv.TimePtrFromPgtype(pgtype.Timestamptz{Time: paidAt, Valid: true})
	assert.Equal(t, &paidAt, got)
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(errors.New("connection reset")))
	assert.False(t, pgconv.IsNoRows(nil))
}
