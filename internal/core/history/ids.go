package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hay-kot/tonebook/pkg/randid"
)

// IDGenerator produces a record ID for a record saved at now.
type IDGenerator func(now time.Time) string

// Supported ID schemes.
const (
	IDSchemeLegacy = "legacy"
	IDSchemeUUID   = "uuid"
)

// LegacyID builds IDs of the form param_<unix millis>_<9 random chars>, the
// format used by existing exports. Uniqueness is probabilistic; the store
// regenerates on collision.
func LegacyID(now time.Time) string {
	return fmt.Sprintf("param_%d_%s", now.UnixMilli(), randid.Generate(9))
}

// UUIDv7 builds time-ordered 128-bit identifiers.
func UUIDv7(_ time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GeneratorFor resolves an ID scheme name. Unknown names fall back to LegacyID.
func GeneratorFor(scheme string) IDGenerator {
	if scheme == IDSchemeUUID {
		return UUIDv7
	}
	return LegacyID
}
