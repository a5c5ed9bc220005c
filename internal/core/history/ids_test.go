package history

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyID(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	id := LegacyID(now)

	assert.Regexp(t, regexp.MustCompile(`^param_1718000000123_[a-z0-9]{9}$`), id)
	assert.NotEqual(t, id, LegacyID(now))
}

func TestUUIDv7(t *testing.T) {
	parsed, err := uuid.Parse(UUIDv7(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestGeneratorFor(t *testing.T) {
	now := time.UnixMilli(1718000000123)

	assert.Regexp(t, `^param_`, GeneratorFor(IDSchemeLegacy)(now))
	assert.Regexp(t, `^param_`, GeneratorFor("bogus")(now))

	_, err := uuid.Parse(GeneratorFor(IDSchemeUUID)(now))
	assert.NoError(t, err)
}
