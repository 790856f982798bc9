package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePorcelain(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{
			name: "clean tree",
			out:  "",
			want: nil,
		},
		{
			name: "modified and untracked",
			out:  " M pyproject.toml\n?? notes.txt",
			want: []string{"pyproject.toml", "notes.txt"},
		},
		{
			name: "staged rename reports the new path",
			out:  "R  old_name.py -> new_name.py",
			want: []string{"new_name.py"},
		},
		{
			name: "quoted path",
			out:  ` M "with space.txt"`,
			want: []string{"with space.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePorcelain(tt.out))
		})
	}
}

func TestRefspecs(t *testing.T) {
	assert.Equal(t, "refs/heads/main:refs/heads/main", BranchRefspec("main"))
	assert.Equal(t, "refs/tags/v1.4.1:refs/tags/v1.4.1", TagRefspec("v1.4.1"))
}
