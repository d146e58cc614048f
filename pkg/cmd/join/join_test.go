package join

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/onboarding"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewJoinCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestJoinCmd(t *testing.T) {
	out, err := execute(t, "--name", "Sophie Laurent", "--email", "sophie@example.com",
		"--handle", "slaurent", "--experience", "amateur", "--class", "r5", "-o", "json")
	require.NoError(t, err)

	var got onboarding.Registration
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEqual(t, uuid.Nil, got.MemberID)
	assert.Equal(t, onboarding.ExperienceAmateur, got.Form.Experience)
	assert.Equal(t, model.ClassMid, got.Form.PreferredClass)
}

func TestJoinCmd_table(t *testing.T) {
	out, err := execute(t, "--name", "Sophie Laurent", "--email", "sophie@example.com",
		"--handle", "slaurent", "--experience", "rookie", "--class", "entry")
	require.NoError(t, err)
	assert.Contains(t, out, "welcome to the championship!")
	assert.Contains(t, out, "slaurent")
}

func TestJoinCmd_errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing personal data", []string{"--name", "Sophie"}, onboarding.ErrGuard},
		{
			"missing experience",
			[]string{"--name", "a", "--email", "b", "--handle", "c"},
			onboarding.ErrGuard,
		},
		{
			"missing class",
			[]string{"--name", "a", "--email", "b", "--handle", "c", "--experience", "pro"},
			onboarding.ErrGuard,
		},
		{"unknown experience", []string{"--experience", "guru"}, model.ErrInvalidInput},
		{"unknown class", []string{"--class", "f1"}, model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
