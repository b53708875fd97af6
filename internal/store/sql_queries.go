package store

// Local replica (SQLite).
const (
	selectLocalRecords = `SELECT payload FROM records ORDER BY position;`
	deleteLocalRecords = `DELETE FROM records;`
	insertLocalRecord  = `INSERT INTO records (id, position, payload) VALUES (?, ?, ?);`

	selectLocalConflicts = `SELECT payload FROM conflicts ORDER BY id;`
	deleteLocalConflicts = `DELETE FROM conflicts;`
	insertLocalConflict  = `INSERT INTO conflicts (id, payload) VALUES (?, ?);`

	selectLocalKV = `SELECT value FROM kv WHERE key = ?;`
	upsertLocalKV = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
	deleteLocalKV = `DELETE FROM kv;`
)

// Server database (PostgreSQL).
const (
	createUser = `INSERT INTO users (login, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`
)

// taskColumns is the column list every task query selects, in scan order.
var taskColumns = []string{
	"id", "name", "description", "completed", "created_at", "updated_at",
	"deadline", "category", "priority", "deleted", "changed_at", "changed_by",
}
