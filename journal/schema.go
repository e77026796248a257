// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	dataset TEXT NOT NULL,
	bars INTEGER NOT NULL,
	fast_ma TEXT NOT NULL,
	medium_ma TEXT NOT NULL,
	slow_ma TEXT NOT NULL,
	price_precision INTEGER NOT NULL,
	type1_signals INTEGER NOT NULL,
	type2_signals INTEGER NOT NULL,
	notes TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS signals (
	run_id TEXT NOT NULL,
	bar_index INTEGER NOT NULL,
	time DATETIME NOT NULL,
	state INTEGER NOT NULL,
	kind TEXT NOT NULL,
	value INTEGER NOT NULL,
	mode TEXT NOT NULL,
	price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id);
`
