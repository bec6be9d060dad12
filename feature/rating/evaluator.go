package rating

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"osu-db-tool/core/beatmap"
	"osu-db-tool/core/osudb"
)

// ErrNoCommand is returned when no difficulty calculator command is configured.
var ErrNoCommand = errors.New("rating.command is not configured")

// Evaluator loads beatmaps for difficulty calculation.
type Evaluator interface {
	// Load reads the beatmap at path. A returned error marks the beatmap as failed.
	Load(ctx context.Context, path string) (Chart, error)
}

// Chart is a loaded beatmap.
type Chart interface {
	// Stars returns the star rating with mods applied.
	Stars(ctx context.Context, mods osudb.ModSet) (float64, error)
}

// ExternalEvaluator computes star ratings with an external command.
type ExternalEvaluator struct {
	args []string
}

// NewExternalEvaluator parses a command line template. See the package documentation
// for the supported placeholders.
func NewExternalEvaluator(command string) (*ExternalEvaluator, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, ErrNoCommand
	}
	return &ExternalEvaluator{args: args}, nil
}

// Load parses the beatmap so unreadable files fail before any command is run.
func (e *ExternalEvaluator) Load(_ context.Context, path string) (Chart, error) {
	f, err := beatmap.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if !f.HasHitObjects() {
		return nil, beatmap.ErrNoHitObjects
	}
	return &externalChart{args: e.args, path: path}, nil
}

type externalChart struct {
	args []string
	path string
}

func (c *externalChart) Stars(ctx context.Context, mods osudb.ModSet) (float64, error) {
	r := strings.NewReplacer(
		"{path}", c.path,
		"{mods_bits}", strconv.FormatUint(uint64(mods), 10),
		"{mods}", mods.String(),
	)
	args := make([]string, len(c.args))
	for i, a := range c.args {
		args[i] = r.Replace(a)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}

	stars, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: unexpected output %q", args[0], strings.TrimSpace(string(out)))
	}
	return stars, nil
}
