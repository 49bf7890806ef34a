package opener

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	name string
	args []string
}

func newTestOpener(command string, args []string, goos string) (*Opener, *[]recorded) {
	var calls []recorded
	o := New(command, args, nil)
	o.goos = goos
	o.start = func(name string, args ...string) error {
		calls = append(calls, recorded{name, args})
		return nil
	}
	return o, &calls
}

func TestOpenConfiguredViewer(t *testing.T) {
	o, calls := newTestOpener("feh", []string{"--scale-down"}, "linux")

	require.NoError(t, o.Open("http://i.annihil.us/x/portrait_incredible.jpg"))
	assert.Equal(t, []recorded{{
		name: "feh",
		args: []string{"--scale-down", "http://i.annihil.us/x/portrait_incredible.jpg"},
	}}, *calls)
}

func TestOpenConfiguredArgsNotMutated(t *testing.T) {
	args := make([]string, 1, 4)
	args[0] = "-a"
	o, _ := newTestOpener("viewer", args, "linux")

	require.NoError(t, o.Open("http://a"))
	require.NoError(t, o.Open("http://b"))
	assert.Equal(t, []string{"-a"}, o.args)
}

func TestOpenSystemDefault(t *testing.T) {
	tests := []struct {
		goos string
		want recorded
	}{
		{"darwin", recorded{"open", []string{"http://x"}}},
		{"linux", recorded{"xdg-open", []string{"http://x"}}},
		{"freebsd", recorded{"xdg-open", []string{"http://x"}}},
		{"windows", recorded{"rundll32", []string{"url.dll,FileProtocolHandler", "http://x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o, calls := newTestOpener("", nil, tt.goos)
			require.NoError(t, o.Open("http://x"))
			assert.Equal(t, []recorded{tt.want}, *calls)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux")
	assert.Error(t, o.Open(""))
	assert.Empty(t, *calls)

	o.start = func(string, ...string) error { return errors.New("not found") }
	err := o.Open("http://x")
	assert.ErrorContains(t, err, "xdg-open")
}
