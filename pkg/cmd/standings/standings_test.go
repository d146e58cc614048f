//nolint:funlen // ok for tests
package standings

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/testsupport/basedata"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewStandingsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStandingsCmd_json(t *testing.T) {
	out, err := execute(t, "--season", basedata.SampleSeasonFile(),
		"-o", "json", "--teams", "--trend")
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Rally Championship", got.Season)
	assert.Equal(t, 2, got.After)
	require.Len(t, got.Drivers, 5)
	assert.Equal(t, "maria-santos", got.Drivers[0].EntrantID)
	assert.Equal(t, 78, got.Drivers[0].Points)
	require.Len(t, got.Teams, 3)
	assert.Equal(t, "Hyundai Motorsport", got.Teams[0].Team)
	require.Len(t, got.Trend, 5)
	assert.Equal(t, model.DirectionUp, got.Trend[0].Direction)
}

func TestStandingsCmd_after(t *testing.T) {
	out, err := execute(t, "--season", basedata.SampleSeasonFile(),
		"-o", "json", "--after", "1")
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.After)
	assert.Equal(t, "alex-chen", got.Drivers[0].EntrantID)
	assert.Equal(t, 46, got.Drivers[0].Points)
	assert.Empty(t, got.Teams)
	assert.Empty(t, got.Trend)
}

func TestStandingsCmd_table(t *testing.T) {
	out, err := execute(t, "--season", basedata.SampleSeasonFile(), "--teams")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Rally Championship 2024 after 2 events", lines[0])
	assert.Equal(t, []string{"RANK", "ENTRANT", "POINTS", "WINS", "PODIUMS", "EVENTS", "BEST"},
		strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", "maria-santos", "78", "1", "2", "2", "1"},
		strings.Fields(lines[2]))
	assert.Contains(t, out, "Hyundai Motorsport")
	assert.Contains(t, out, "alex-chen,tommi-virtanen")
}

func TestStandingsCmd_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"--season", "does-not-exist.yml"}},
		{"after too large", []string{"--season", basedata.SampleSeasonFile(), "--after", "3"}},
		{"unknown output", []string{"--season", basedata.SampleSeasonFile(), "-o", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStandingsCmd_watch(t *testing.T) {
	data, err := os.ReadFile(basedata.SampleSeasonFile())
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "season.yml")
	require.NoError(t, os.WriteFile(file, data, 0o600))

	cmd := NewStandingsCmd()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--season", file, "--watch"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Rally Championship 2024")
	}, 5*time.Second, 10*time.Millisecond)

	updated := strings.Replace(string(data), "name: Rally Championship",
		"name: Updated Championship", 1)
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o600))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Updated Championship 2024")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
