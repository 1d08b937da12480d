package flags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTypeNameConstant           = "bool"
	toggleNoOptionDefaultConstant    = "true"
	toggleParseErrorTemplateConstant = "invalid toggle value %q"
)

var toggleLiterals = map[string]bool{
	"yes": true,
	"y":   true,
	"on":  true,
	"no":  false,
	"n":   false,
	"off": false,
}

type toggleValue struct {
	target *bool
}

func (value *toggleValue) String() string {
	if value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Set(raw string) error {
	parsed, parseError := parseToggleValue(raw)
	if parseError != nil {
		return parseError
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}

// AddToggleFlag registers a boolean flag that also accepts yes/no and on/off spellings.
// A nil target allocates storage owned by the flag.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}
	if flagSet.Lookup(name) != nil {
		return
	}
	if target == nil {
		target = new(bool)
	}
	*target = defaultValue
	flag := flagSet.VarPF(&toggleValue{target: target}, name, shorthand, usage)
	flag.NoOptDefVal = toggleNoOptionDefaultConstant
}

func parseToggleValue(raw string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if literal, exists := toggleLiterals[normalized]; exists {
		return literal, nil
	}
	parsed, parseError := strconv.ParseBool(normalized)
	if parseError != nil {
		return false, fmt.Errorf(toggleParseErrorTemplateConstant, raw)
	}
	return parsed, nil
}
