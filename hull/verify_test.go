package hull

import (
	"testing"

	"github.com/gmlewis/giftwrap/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	hb := New(newSet(t, origin, ne, nw, sw, se))
	assert.EqualError(t, hb.Verify(), "hull: cannot verify hull in state empty")

	hb.Advance()
	assert.EqualError(t, hb.Verify(), "hull: cannot verify hull in state growing")

	_, err := hb.Run(100)
	require.NoError(t, err)
	assert.NoError(t, hb.Verify())
}

func TestVerify_Mismatch(t *testing.T) {
	tests := []struct {
		name    string
		verts   []vec2.Vec2
		wantErr string
	}{
		{
			name:    "point left out",
			verts:   []vec2.Vec2{ne, nw, sw, ne},
			wantErr: "hull: point (1,-1) lies outside the hull",
		},
		{
			name:    "corner never visited",
			verts:   []vec2.Vec2{vec2.New(2, 2), vec2.New(-2, 2), vec2.New(-2, -2), vec2.New(2, -2), vec2.New(2, 2)},
			wantErr: "hull: vertex (-1,-1) missing from the walk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hb := New(newSet(t, origin, ne, nw, sw, se))
			hb.verts = tt.verts
			hb.closed = true
			assert.EqualError(t, hb.Verify(), tt.wantErr)
		})
	}
}
