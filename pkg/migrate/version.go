// Package migrate implements deterministic stepwise rewriting of a STAC
// JSON tree from one stac_version to another, per spec.md §4.2. Each step
// is a pure function over a generic JSON tree so unknown fields survive
// untouched.
package migrate

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Known versions, in migration order.
const (
	V1_0_0      = "1.0.0"
	V1_1_0Beta1 = "1.1.0-beta.1"
	V1_1_0      = "1.1.0"
)

// orderedVersions lists every version this package knows how to migrate
// between, oldest first.
var orderedVersions = []string{V1_0_0, V1_1_0Beta1, V1_1_0}

// ErrUnsupportedMigration is returned when from or to is unknown, or when
// to precedes from (backward migration is not supported).
type ErrUnsupportedMigration struct {
	From, To string
}

func (e *ErrUnsupportedMigration) Error() string {
	return fmt.Sprintf("migrate: unsupported migration from %q to %q", e.From, e.To)
}

func indexOf(version string) int {
	for i, v := range orderedVersions {
		if v == version {
			return i
		}
	}
	return -1
}

// compare returns -1, 0, or 1 per Masterminds/semver ordering, treating
// "1.1.0-beta.1" as strictly between "1.0.0" and "1.1.0".
func compare(a, b string) (int, error) {
	sa, err := semver.NewVersion(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	sb, err := semver.NewVersion(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return sa.Compare(sb), nil
}
