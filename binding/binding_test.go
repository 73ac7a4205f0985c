package binding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestInterpolateResolvesPaths(t *testing.T) {
	data := decode(t, `{"faculty":{"name":"Dr. A","ids":[1234567, 7]},"dept":"CSE"}`)

	out, missing := Interpolate("${faculty.name} (${dept}) #${faculty.ids[0]}", data)
	assert.Equal(t, "Dr. A (CSE) #1234567", out)
	assert.Empty(t, missing)
}

func TestInterpolateKeepsUnknownPlaceholders(t *testing.T) {
	data := decode(t, `{"a":{"b":1}}`)

	out, missing := Interpolate("x ${a.c} y ${a} z ${ }", data)
	assert.Equal(t, "x ${a.c} y ${a} z ${ }", out)
	assert.Equal(t, []string{"a.c", "a"}, missing)

	out, missing = Interpolate("plain ${x}", nil)
	assert.Equal(t, "plain ${x}", out)
	assert.Equal(t, []string{"x"}, missing)
}

func TestLookupString(t *testing.T) {
	data := decode(t, `{"s":"v","n":2.5,"b":true,"z":null,"arr":[["deep"]]}`)

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"s", "v", true},
		{"n", "2.5", true},
		{"b", "true", true},
		{"z", "", false},
		{"arr[0][0]", "deep", true},
		{"arr[1]", "", false},
		{"arr[x]", "", false},
		{"arr[0", "", false},
		{"arr", "", false},
		{"s.t", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := LookupString(data, tc.path)
		assert.Equal(t, tc.ok, ok, "path %q", tc.path)
		assert.Equal(t, tc.want, got, "path %q", tc.path)
	}
}
