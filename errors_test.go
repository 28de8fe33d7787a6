package scaffold_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/scaffold"
)

func TestUsedAbstractError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := scaffold.NewUsedAbstractError("DataAccessObject", "TableName")
		assert.Equal(t, "scaffold: TableName invoked on abstract DataAccessObject", err.Error())

		err = scaffold.NewUsedAbstractError("Database", "")
		assert.Equal(t, "scaffold: abstract Database used directly", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := scaffold.NewUsedAbstractError("DataAccessObject", "TableName")
		assert.True(t, errors.Is(err, scaffold.ErrUsedAbstract))
		assert.False(t, errors.Is(err, scaffold.ErrNotConnected))
	})

	t.Run("IsUsedAbstract", func(t *testing.T) {
		err := scaffold.NewUsedAbstractError("DataAccessObject", "TableName")
		assert.True(t, scaffold.IsUsedAbstract(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, scaffold.IsUsedAbstract(wrapped))

		assert.True(t, scaffold.IsUsedAbstract(scaffold.ErrUsedAbstract))
		assert.False(t, scaffold.IsUsedAbstract(errors.New("other error")))
		assert.False(t, scaffold.IsUsedAbstract(nil))
	})
}

func TestMissingConnectionError(t *testing.T) {
	err := scaffold.NewMissingConnectionError("sql")
	assert.Equal(t, "scaffold: missing connection target for sql backend", err.Error())
	assert.True(t, errors.Is(err, scaffold.ErrMissingConnection))
	assert.True(t, scaffold.IsMissingConnection(fmt.Errorf("connect: %w", err)))
	assert.False(t, scaffold.IsMissingConnection(nil))
}

func TestIsNotConnected(t *testing.T) {
	assert.True(t, scaffold.IsNotConnected(scaffold.ErrNotConnected))
	assert.True(t, scaffold.IsNotConnected(fmt.Errorf("find: %w", scaffold.ErrNotConnected)))
	assert.False(t, scaffold.IsNotConnected(errors.New("other")))
}

func TestQueryError(t *testing.T) {
	cause := errors.New("duplicate entry")

	t.Run("with op", func(t *testing.T) {
		err := scaffold.NewQueryError("users", "insert", cause)
		assert.Equal(t, "scaffold: insert users: duplicate entry", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.True(t, scaffold.IsQueryError(err))
	})

	t.Run("without op", func(t *testing.T) {
		err := scaffold.NewQueryError("users", "", cause)
		assert.Equal(t, "scaffold: querying users: duplicate entry", err.Error())
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, scaffold.IsQueryError(nil))
	})
}
