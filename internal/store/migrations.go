package store

type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create plugin loads",
		SQL: `
			CREATE TABLE plugin_loads (
				id         TEXT PRIMARY KEY,
				namespace  TEXT NOT NULL,
				name       TEXT NOT NULL,
				class      TEXT NOT NULL,
				prefix     TEXT NOT NULL DEFAULT '',
				file       TEXT NOT NULL,
				loaded_at  TEXT NOT NULL
			);

			CREATE INDEX idx_plugin_loads_plugin ON plugin_loads (namespace, name, loaded_at);
		`,
	},
}
