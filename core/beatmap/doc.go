// Package beatmap parses and re-serializes .osu beatmap files.
//
// Only the [HitObjects] section is interpreted. Every other line, including comments,
// blank lines and the byte order mark, is kept verbatim so that a file with consistent
// line endings that is parsed and written back without changes is byte-identical. Hit objects that
// were not modified are also written back from their original text.
package beatmap
