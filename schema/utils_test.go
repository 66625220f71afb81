package schema

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTagSetting(t *testing.T) {
	tags := ParseTagSetting(`fk:blog.Author;related_name:posts; null ;description:a\; b`, ";")
	expects := map[string]string{
		"FK":           "blog.Author",
		"RELATED_NAME": "posts",
		"NULL":         "NULL",
		"DESCRIPTION":  "a; b",
	}

	if !reflect.DeepEqual(tags, expects) {
		t.Errorf("tags expects %v, got %v", expects, tags)
	}
}

func TestSplitReference(t *testing.T) {
	app, model, err := SplitReference("blog.Author")
	if err != nil || app != "blog" || model != "Author" {
		t.Errorf("failed to split reference, got %v %v %v", app, model, err)
	}

	for _, reference := range []string{"Author", "blog.Author.name", ".Author", "blog.", ""} {
		if _, _, err := SplitReference(reference); !errors.Is(err, ErrConfiguration) {
			t.Errorf("reference %q should be rejected with a configuration error, got %v", reference, err)
		}
	}
}
