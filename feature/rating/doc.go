// Package rating backfills cached star ratings in osu!.db.
//
// For every beatmap the wanted mod combinations without a cached standard rating are
// computed by an Evaluator and appended. Beatmaps are independent, so the pass fans out
// over a bounded pool of workers. Beatmaps whose file cannot be loaded are left as
// they are and reported in Stats; the optional Ledger keeps them across runs.
//
// The default Evaluator runs an external difficulty calculator:
//
//	rating:
//	  command: "osu-stars --mods {mods} {path}"
//
// {path} is replaced with the .osu file, {mods} with the acronym form (e.g. HRDT) and
// {mods_bits} with the numeric mod mask. The command must print the star rating.
package rating
