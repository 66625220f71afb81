package utils

import (
	"testing"
)

func TestSourceDir(t *testing.T) {
	cases := []struct {
		file string
		want string
	}{
		{
			file: `C:/Users/name/go/pkg/mod/github.com/tameorm/tame@v1.2.3/utils/utils.go`,
			want: `C:/Users/name/go/pkg/mod/github.com/tameorm/`,
		},
		{
			file: `C:/go/work/proj/tame/utils/utils.go`,
			want: `C:/go/work/proj/tame/`,
		},
	}
	for _, c := range cases {
		s := sourceDir(c.file)
		if s != c.want {
			t.Fatalf("%s: expected %s, got %s", c.file, c.want, s)
		}
	}
}
