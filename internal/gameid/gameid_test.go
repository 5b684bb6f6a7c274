package gameid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValidAndUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	prev := ""
	for range 100 {
		id := New()
		require.NoError(t, Validate(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Greater(t, id, prev, "ids should sort by creation")
		prev = id
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.Nil))
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(uuid.Max))

	a := Encode(uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057"))
	b := Encode(uuid.MustParse("01890a5d-ac97-774b-bcce-b302099a8057"))
	require.Len(t, a, Length)
	assert.Less(t, a, b, "encoding should keep byte order")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"generated", "01h455vb4pex5vsknk084sn02q", false},
		{"chosen name", "table-1", false},
		{"underscores and capitals", "Friday_Night", false},
		{"longest", strings.Repeat("a", MaxLength), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxLength+1), true},
		{"parent directory", "../escape", true},
		{"slash", "a/b", true},
		{"dot", "table.toml", true},
		{"space", "table 1", true},
		{"non-ascii", "täble", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
