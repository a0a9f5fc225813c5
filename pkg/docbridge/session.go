package docbridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionKey returns a fresh key identifying one editing session. It is
// distinct from the storage key: the editor uses it to tag concurrent edit
// locks, so two sessions on the same document must never share one. The
// unix-milli prefix keeps keys sortable; the random suffix makes collisions
// negligible.
func NewSessionKey() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
