package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "students_student_id_key"}
	fk := &pgconn.PgError{Code: "23503"}
	wrapped := fmt.Errorf("insert student: %w", unique)

	assert.True(t, IsDuplicateKeyError(wrapped))
	assert.True(t, IsDuplicateConstraintError(wrapped, "students_student_id_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "users_username_key"))
	assert.True(t, IsForeignKeyError(fk))
	assert.False(t, IsForeignKeyError(unique))

	msg, ok := ServerMessage(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "22001", Message: "value too long for type character varying(32)"}))
	assert.True(t, ok)
	assert.Equal(t, "value too long for type character varying(32)", msg)

	msg, ok = ServerMessage(&pgconn.PgError{Code: "23505", Message: "duplicate key value", Detail: "Key (student_id)=(S1) already exists."})
	assert.True(t, ok)
	assert.Equal(t, "duplicate key value (Key (student_id)=(S1) already exists.)", msg)

	_, ok = ServerMessage(errors.New("broken pipe"))
	assert.False(t, ok)
}
