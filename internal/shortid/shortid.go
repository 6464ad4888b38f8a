// Package shortid generates short, probabilistically unique identifiers for
// test data names. Two calls within the same millisecond share the timestamp
// part and rely on the 4 character random suffix alone; collisions are
// unlikely but possible.
package shortid

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 4

var now = time.Now

// New returns base36(unix millis) followed by a random hex suffix.
func New() string {
	ts := strconv.FormatInt(now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
	return ts + suffix
}

// Name returns prefix_<shortID>, e.g. DEPT_m1x2k9ab3f.
func Name(prefix string) string {
	if prefix == "" {
		return New()
	}
	return prefix + "_" + New()
}
