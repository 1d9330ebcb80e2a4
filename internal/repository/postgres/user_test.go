package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewUserRepository(db).db)
	assert.Equal(t, db, NewRelationshipRepository(db).db)
	assert.Equal(t, db, NewNotepadRepository(db).db)
	assert.Equal(t, db, NewMessageRepository(db).db)
	assert.Equal(t, db, NewNoteRepository(db).db)
	assert.Equal(t, db, NewInviteRepository(db).db)
	assert.Equal(t, db, NewRefreshTokenRepository(db).db)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

func TestConnection_PingNilPool(t *testing.T) {
	db := &Connection{}

	err := db.Ping(t.Context())
	assert.Error(t, err)
	assert.NoError(t, db.Close())
}
