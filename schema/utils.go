package schema

import (
	"strings"
)

// ParseTagSetting parse `tame` struct tag settings, keys are upper cased,
// a separator escaped with `\` is kept in the value
func ParseTagSetting(str string, sep string) map[string]string {
	settings := map[string]string{}
	names := strings.Split(str, sep)

	for i := 0; i < len(names); i++ {
		j := i
		if len(names[j]) > 0 {
			for {
				if names[j][len(names[j])-1] == '\\' && i+1 < len(names) {
					i++
					names[j] = names[j][0:len(names[j])-1] + sep + names[i]
					names[i] = ""
				} else {
					break
				}
			}
		}

		values := strings.Split(names[j], ":")
		k := strings.TrimSpace(strings.ToUpper(values[0]))

		if len(values) >= 2 {
			settings[k] = strings.TrimSpace(strings.Join(values[1:], ":"))
		} else if k != "" {
			settings[k] = k
		}
	}

	return settings
}

// SplitReference splits a `<app>.<model>` reference
func SplitReference(reference string) (app, model string, err error) {
	items := strings.Split(reference, ".")
	if len(items) != 2 || items[0] == "" || items[1] == "" {
		return "", "", ConfigErrorf(
			"'%s' is not a valid model reference Bad Reference. Should be something like <appname>.<modelname>.",
			reference,
		)
	}
	return items[0], items[1], nil
}

func lookupSetting(settings map[string]string, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := settings[key]; ok {
			return v, true
		}
	}
	return "", false
}
