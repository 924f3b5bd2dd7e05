package parsco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterleave(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		input       string
		sepRequired bool
		want        []int
		wantPos     int
		wantErr     bool
		farthest    int
	}{
		{name: "three elements", input: "1,2,3", sepRequired: true, want: []int{1, 2, 3}, wantPos: 5},
		{name: "single element", input: "7", sepRequired: true, want: []int{7}, wantPos: 1},
		{name: "stops before garbage", input: "1,2]", sepRequired: true, want: []int{1, 2}, wantPos: 3},
		{name: "trailing separator", input: "1,2,", sepRequired: true, wantErr: true, farthest: 4},
		{name: "empty", input: "", sepRequired: true, wantErr: true},
		{name: "optional separators", input: "1,2;3", sepRequired: false, want: []int{1, 2}, wantPos: 3},
		{name: "optional separators empty", input: "", sepRequired: false, want: nil, wantPos: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewState(tt.input)
			got, err := Interleave(Int(), Char(','), tt.sepRequired)(s)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.farthest, s.Farthest())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPos, s.Pos())
		})
	}
}

func TestInterleaveOptionalSeparator(t *testing.T) {
	t.Parallel()

	s := NewState("12,3")
	got, err := Interleave(Digit(), Char(','), false)(s)
	require.NoError(t, err)
	assert.Equal(t, []byte("123"), got)
	assert.True(t, s.AtEOF())
}

func TestInterleaveLast(t *testing.T) {
	t.Parallel()

	s := NewState("1;2;3")
	got, err := InterleaveLast(Int(), Char(';'), true)(s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 4, s.Pos())

	s = NewState("1;2;3")
	got, err = InterleaveLast(Int(), Char(';'), false)(s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, s.AtEOF())
}

func TestInterleaveFirst(t *testing.T) {
	t.Parallel()

	s := NewState(",1,2x")
	got, err := InterleaveFirst(Int(), Char(','), true)(s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 4, s.Pos())

	s = NewState("1,2")
	got, err = InterleaveFirst(Int(), Char(','), false)(s)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, s.AtEOF())

	got, err = InterleaveFirst(Int(), Char(','), true)(NewState("1,2"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
