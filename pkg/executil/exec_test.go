package executil

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	e := &RealExecutor{}
	cmd := Shell(`printf '%s:' "$TONEBOOK_RECORD_ID"; cat`)
	cmd.Env = []string{"TONEBOOK_RECORD_ID=rec_1"}
	cmd.Stdin = strings.NewReader("payload")

	out, err := e.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "rec_1:payload", string(out))
}

func TestRealExecutor_RunFailure(t *testing.T) {
	e := &RealExecutor{}

	out, err := e.Run(context.Background(), Shell("echo broken >&2; exit 3"))
	require.Error(t, err)
	assert.Contains(t, string(out), "broken")
}

func TestRecordingExecutor(t *testing.T) {
	boom := errors.New("boom")
	e := &RecordingExecutor{
		Outputs: map[string][]byte{"sh": []byte("ok")},
		Errors:  map[string]error{"false": boom},
	}

	cmd := Shell("echo hi")
	cmd.Stdin = strings.NewReader(`{"id":"x"}`)
	out, err := e.Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))

	_, err = e.Run(context.Background(), Command{Name: "false"})
	require.ErrorIs(t, err, boom)

	require.Len(t, e.Commands, 2)
	assert.Equal(t, []string{"-c", "echo hi"}, e.Commands[0].Args)
	assert.Equal(t, `{"id":"x"}`, e.Commands[0].Input)

	e.Reset()
	assert.Empty(t, e.Commands)
}
