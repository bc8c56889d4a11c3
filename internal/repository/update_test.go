package repository

import (
	"testing"

	"github.com/JaedenTYY/justrsvp/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdatable = map[string]struct{}{
	"email":      {},
	"username":   {},
	"first_name": {},
}

func TestBuildUpdate_SingleField(t *testing.T) {
	fields := NewFields().Set("email", "new@example.com")

	sql, args, err := buildUpdate("users", testUpdatable, fields, "clerk_id", "user_123", "id, email")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET email = $1 WHERE clerk_id = $2 RETURNING id, email", sql)
	assert.Equal(t, []any{"new@example.com", "user_123"}, args)
}

func TestBuildUpdate_PreservesInsertionOrder(t *testing.T) {
	fields := NewFields().
		Set("username", "bob").
		Set("email", "bob@example.com").
		Set("first_name", "Bob")

	sql, args, err := buildUpdate("users", testUpdatable, fields, "clerk_id", "user_123", "id")
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE users SET username = $1, email = $2, first_name = $3 WHERE clerk_id = $4 RETURNING id",
		sql)
	assert.Equal(t, []any{"bob", "bob@example.com", "Bob", "user_123"}, args)
}

func TestBuildUpdate_ResettingFieldKeepsPosition(t *testing.T) {
	fields := NewFields().
		Set("username", "bob").
		Set("email", "bob@example.com").
		Set("username", "robert")

	sql, args, err := buildUpdate("users", testUpdatable, fields, "id", 7, "id")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET username = $1, email = $2 WHERE id = $3 RETURNING id", sql)
	assert.Equal(t, []any{"robert", "bob@example.com", 7}, args)
}

func TestBuildUpdate_EmptyFieldSet(t *testing.T) {
	_, _, err := buildUpdate("users", testUpdatable, NewFields(), "id", 1, "id")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Equal(t, "EMPTY_FIELD_SET", errs.CodeOf(err))
}

func TestBuildUpdate_NilFieldSet(t *testing.T) {
	_, _, err := buildUpdate("users", testUpdatable, nil, "id", 1, "id")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
}

func TestBuildUpdate_UnknownFieldRejected(t *testing.T) {
	fields := NewFields().
		Set("email", "x@example.com").
		Set("clerk_id", "user_999")

	_, _, err := buildUpdate("users", testUpdatable, fields, "id", 1, "id")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidArgument(err))
	assert.Equal(t, "UNKNOWN_FIELD", errs.CodeOf(err))
}

func TestBuildUpdate_NullableValue(t *testing.T) {
	fields := NewFields().Set("first_name", nil)

	sql, args, err := buildUpdate("users", testUpdatable, fields, "id", 3, "id")
	require.NoError(t, err)

	assert.Equal(t, "UPDATE users SET first_name = $1 WHERE id = $2 RETURNING id", sql)
	assert.Equal(t, []any{nil, 3}, args)
}

func TestFields_Names(t *testing.T) {
	fields := NewFields().Set("email", "a").Set("username", "b")

	names := fields.Names()
	assert.Equal(t, []string{"email", "username"}, names)

	// Mutating the returned slice must not affect the field set.
	names[0] = "mutated"
	assert.Equal(t, []string{"email", "username"}, fields.Names())
}
