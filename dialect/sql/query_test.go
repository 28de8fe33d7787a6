package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/scaffold"
)

func petsTable() *Table {
	return NewTable("pets",
		Column{Name: "id", Type: "int", Options: ColumnOptions{PrimaryKey: true, AutoIncrement: true, NotNull: true, Unsigned: true}},
		Column{Name: "ownerId", Type: "int", Options: ColumnOptions{ForeignKey: NewForeignKey("users", "id")}},
		Column{Name: "name", Type: "varchar(32)", Options: ColumnOptions{NotNull: true, Default: "'anon'"}},
	)
}

func abcTable() *Table {
	return NewTable("letters",
		Column{Name: "a", Type: "int"},
		Column{Name: "b", Type: "int"},
		Column{Name: "c", Type: "int"},
	)
}

func TestCreateTable(t *testing.T) {
	t.Run("columns then keys", func(t *testing.T) {
		q, err := petsTable().CreateTable()
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS `pets` (\n"+
			"\t`id` int unsigned NOT NULL AUTO_INCREMENT,\n"+
			"\t`ownerId` int,\n"+
			"\t`name` varchar(32) DEFAULT('anon') NOT NULL,\n"+
			"\tPRIMARY KEY (`id`),\n"+
			"\tFOREIGN KEY (`ownerId`) REFERENCES `users` (`id`) ON DELETE CASCADE\n"+
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n", q.SQL)
		assert.Empty(t, q.Params)
	})

	t.Run("composite primary key and no cascade", func(t *testing.T) {
		tbl := NewTable("album_tracks",
			Column{Name: "albumId", Type: "int", Options: ColumnOptions{PrimaryKey: true, ForeignKey: &ForeignKey{Table: "albums", PrimaryKey: "id"}}},
			Column{Name: "trackId", Type: "int", Options: ColumnOptions{PrimaryKey: true, ForeignKey: NewForeignKey("tracks", "id")}},
		)
		q, err := tbl.CreateTable()
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS `album_tracks` (\n"+
			"\t`albumId` int,\n"+
			"\t`trackId` int,\n"+
			"\tPRIMARY KEY (`albumId`, `trackId`),\n"+
			"\tFOREIGN KEY (`albumId`) REFERENCES `albums` (`id`),\n"+
			"\tFOREIGN KEY (`trackId`) REFERENCES `tracks` (`id`) ON DELETE CASCADE\n"+
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n", q.SQL)
	})

	t.Run("no keys", func(t *testing.T) {
		q, err := abcTable().CreateTable()
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE IF NOT EXISTS `letters` (\n"+
			"\t`a` int,\n"+
			"\t`b` int,\n"+
			"\t`c` int\n"+
			") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n", q.SQL)
	})
}

func TestDropAndDeleteAll(t *testing.T) {
	q, err := petsTable().DropTable()
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE `pets`;\n", q.SQL)

	q, err = petsTable().DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `pets`;\n", q.SQL)
}

func TestWhere(t *testing.T) {
	tbl := petsTable()
	tests := []struct {
		name       string
		conditions Conditions
		want       string
	}{
		{"empty", Conditions{}, ""},
		{"nil", nil, ""},
		{"single", Conditions{"id": 5}, "WHERE `id` = :id"},
		{"schema order", Conditions{"name": "x", "id": 5}, "WHERE `id` = :id AND `name` = :name"},
		{"unknown keys last", Conditions{"zeta": 1, "alpha": 2, "name": "x"}, "WHERE `name` = :name AND `alpha` = :alpha AND `zeta` = :zeta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Where(tt.conditions))
		})
	}
}

func TestProject(t *testing.T) {
	tbl := abcTable()
	tests := []struct {
		name       string
		projection Projection
		want       []string
	}{
		{"empty selects all", Projection{}, nil},
		{"include", Projection{"c": true, "a": true}, []string{"a", "c"}},
		{"exclude wins", Projection{"a": true, "b": false}, []string{"a", "c"}},
		{"exclude only", Projection{"b": false}, []string{"a", "c"}},
		{"exclude drops unknown includes", Projection{"x": true, "c": false}, []string{"a", "b"}},
		{"exclude every column", Projection{"a": false, "b": false, "c": false}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Project(tt.projection))
		})
	}
}

func TestFind(t *testing.T) {
	t.Run("conditions", func(t *testing.T) {
		q, err := petsTable().Find(Conditions{"id": 5}, nil)
		require.NoError(t, err)
		assert.Equal(t, "SELECT *\nFROM `pets`\nWHERE `id` = :id;\n", q.SQL)
		assert.Equal(t, Params{"id": 5}, q.Params)
	})

	t.Run("no conditions", func(t *testing.T) {
		q, err := petsTable().Find(Conditions{}, Projection{"name": true})
		require.NoError(t, err)
		assert.Equal(t, "SELECT `name`\nFROM `pets`;\n", q.SQL)
	})

	t.Run("exclude projection", func(t *testing.T) {
		q, err := abcTable().Find(nil, Projection{"a": true, "b": false})
		require.NoError(t, err)
		assert.Equal(t, "SELECT `a`, `c`\nFROM `letters`;\n", q.SQL)
	})

	t.Run("projection excluding every column", func(t *testing.T) {
		_, err := abcTable().Find(nil, Projection{"a": false, "b": false, "c": false})
		assert.ErrorIs(t, err, ErrEmptyProjection)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("set and where", func(t *testing.T) {
		q, err := petsTable().Update(Conditions{"id": 5}, Update{"name": "x"})
		require.NoError(t, err)
		assert.Equal(t, "UPDATE `pets`\n\tSET `name` = :name\n\tWHERE `id` = :id;\n", q.SQL)
		assert.Equal(t, Params{"id": 5, "name": "x"}, q.Params)
	})

	t.Run("set clause", func(t *testing.T) {
		assert.Equal(t, "SET `name` = :name", petsTable().Set(Update{"name": "x"}))
		assert.Equal(t, "SET `ownerId` = :ownerId, `name` = :name", petsTable().Set(Update{"name": "x", "ownerId": 1}))
		assert.Equal(t, "", petsTable().Set(nil))
	})

	t.Run("update wins on collision", func(t *testing.T) {
		q, err := petsTable().Update(Conditions{"name": "old"}, Update{"name": "new"})
		require.NoError(t, err)
		assert.Equal(t, Params{"name": "new"}, q.Params)
	})

	t.Run("empty descriptors", func(t *testing.T) {
		q, err := petsTable().Update(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "UPDATE `pets`;\n", q.SQL)
		assert.Empty(t, q.Params)
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		conditions := Conditions{"id": 1}
		update := Update{"name": "x"}
		_, err := petsTable().Update(conditions, update)
		require.NoError(t, err)
		assert.Equal(t, Conditions{"id": 1}, conditions)
		assert.Equal(t, Update{"name": "x"}, update)
	})
}

func TestInsert(t *testing.T) {
	item := map[string]any{"name": "rex"}
	q, err := petsTable().Insert(item)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `pets` (`id`, `ownerId`, `name`)\nVALUES (:id, :ownerId, :name);\n", q.SQL)
	assert.Equal(t, Params{"name": "rex"}, q.Params)
}

func TestDelete(t *testing.T) {
	q, err := petsTable().Delete(Conditions{"id": 3})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `pets`\n\tWHERE `id` = :id;\n", q.SQL)
	assert.Equal(t, Params{"id": 3}, q.Params)

	q, err = petsTable().Delete(nil)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `pets`;\n", q.SQL)
}

func TestAbstractTable(t *testing.T) {
	tbl := Abstract()

	name, err := tbl.TableName()
	require.Error(t, err)
	assert.True(t, scaffold.IsUsedAbstract(err))
	assert.Empty(t, name)

	builders := map[string]func() (Query, error){
		"create":     tbl.CreateTable,
		"drop":       tbl.DropTable,
		"delete all": tbl.DeleteAll,
		"insert":     func() (Query, error) { return tbl.Insert(nil) },
		"find":       func() (Query, error) { return tbl.Find(nil, nil) },
		"update":     func() (Query, error) { return tbl.Update(nil, nil) },
		"delete":     func() (Query, error) { return tbl.Delete(nil) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			_, err := build()
			assert.ErrorIs(t, err, scaffold.ErrUsedAbstract)
		})
	}

	var nilTable *Table
	_, err = nilTable.TableName()
	assert.ErrorIs(t, err, scaffold.ErrUsedAbstract)
}

func TestNewTableFromLists(t *testing.T) {
	t.Run("lockstep", func(t *testing.T) {
		tbl, err := NewTableFromLists("users",
			[]string{"id", "name"},
			[]string{"int", "text"},
			[]ColumnOptions{{PrimaryKey: true}, {}},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name"}, tbl.Names())
		assert.Equal(t, []string{"int", "text"}, tbl.Types())
		assert.Equal(t, []string{"id"}, tbl.PrimaryKeys())
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := NewTableFromLists("users", []string{"id", "name"}, []string{"int"}, []ColumnOptions{{}, {}})
		assert.ErrorIs(t, err, ErrColumnMismatch)
	})
}

func TestSchema(t *testing.T) {
	out, err := Schema(abcTable(), NewTable("one", Column{Name: "x", Type: "int"}))
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS `letters` (\n\t`a` int,\n\t`b` int,\n\t`c` int\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n"+
		"\n"+
		"CREATE TABLE IF NOT EXISTS `one` (\n\t`x` int\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n", out)

	_, err = Schema(abcTable(), Abstract())
	assert.ErrorIs(t, err, scaffold.ErrUsedAbstract)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`users`", Quote("users"))
	assert.Equal(t, "`we``ird`", Quote("we`ird"))
}
