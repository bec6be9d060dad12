// Package scores imports local replays into scores.db.
//
// Every .osr file below Data/r is reconciled into the score list keyed by beatmap hash.
// A replay whose hash is already listed for its beatmap is skipped. When anything was
// added, the previous scores.db is kept as scores.db.backup.
package scores
