package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type semver struct {
	major, minor, patch int
}

func parse(s string) (semver, error) {
	var v semver
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "-")
	if _, err := fmt.Sscanf(s, "%d.%d.%d", &v.major, &v.minor, &v.patch); err != nil {
		return semver{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return v, nil
}

// Compare orders two major.minor.patch versions: 1 if a > b, -1 if a < b and 0 if equal.
// A leading "v" and any pre-release suffix are ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		lo.T2(av.major, bv.major),
		lo.T2(av.minor, bv.minor),
		lo.T2(av.patch, bv.patch),
	} {
		switch {
		case pair.A > pair.B:
			return 1, nil
		case pair.A < pair.B:
			return -1, nil
		}
	}
	return 0, nil
}
