package tests

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tameorm/tame/schema"
	"github.com/tameorm/tame/utils"
)

func AssertObjEqual(t *testing.T, r, e interface{}, names ...string) {
	for _, name := range names {
		got := reflect.Indirect(reflect.ValueOf(r)).FieldByName(name).Interface()
		expect := reflect.Indirect(reflect.ValueOf(e)).FieldByName(name).Interface()
		t.Run(name, func(t *testing.T) {
			AssertEqual(t, got, expect)
		})
	}
}

func AssertEqual(t *testing.T, got, expect interface{}) {
	if reflect.DeepEqual(got, expect) || fmt.Sprint(got) == fmt.Sprint(expect) {
		return
	}

	if curTime, ok := got.(time.Time); ok {
		if expectTime, ok := expect.(time.Time); ok && curTime.Round(time.Second).Equal(expectTime.Round(time.Second)) {
			return
		}
	}

	t.Errorf("%v: expect: %#v, got %#v", utils.FileWithLineNum(), expect, got)
}

// AssertFieldNames checks the fields of model are exactly names, in declaration order
func AssertFieldNames(t *testing.T, model *schema.Model, names ...string) {
	var got []string
	for _, field := range model.Fields {
		got = append(got, field.Name)
	}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("%v: fields of %v expect: %v, got %v", utils.FileWithLineNum(), model.Name, names, got)
	}
}

// AssertConfigurationError checks err is a configuration error containing msg
func AssertConfigurationError(t *testing.T, err error, msg string) {
	if err == nil {
		t.Fatalf("%v: expect configuration error %q, got nil", utils.FileWithLineNum(), msg)
	}
	if !errors.Is(err, schema.ErrConfiguration) {
		t.Errorf("%v: expect configuration error, got %T: %v", utils.FileWithLineNum(), err, err)
	}
	if !strings.Contains(err.Error(), msg) {
		t.Errorf("%v: expect error containing %q, got %q", utils.FileWithLineNum(), msg, err.Error())
	}
}
