package gateway

import (
	"fmt"
	"strconv"
	"strings"
)

// Base carries the parameter bag shared by every driver. Drivers embed it
// and add their own Set<Option> methods on top of SetTestMode and SetCurrency.
type Base struct {
	name      string
	shortName string
	defaults  map[string]any
	params    map[string]any
}

// NewBase returns a Base initialised from defaults. A []string default lists
// the accepted values and its first entry is used.
func NewBase(name, shortName string, defaults map[string]any) *Base {
	b := &Base{name: name, shortName: shortName, defaults: defaults}
	b.Initialize(nil)
	return b
}

// Initialize resets the parameters to the defaults and applies params on top.
func (b *Base) Initialize(params map[string]any) {
	b.params = make(map[string]any, len(b.defaults)+len(params))
	for k, v := range b.defaults {
		if choices, ok := v.([]string); ok {
			v = ""
			if len(choices) > 0 {
				v = choices[0]
			}
		}
		b.params[k] = v
	}
	for k, v := range params {
		b.params[k] = v
	}
}

func (b *Base) Name() string      { return b.name }
func (b *Base) ShortName() string { return b.shortName }

// SupportsAuthorize is false unless a driver overrides it.
func (b *Base) SupportsAuthorize() bool { return false }

func (b *Base) DefaultParameters() map[string]any { return copyParams(b.defaults) }
func (b *Base) Parameters() map[string]any        { return copyParams(b.params) }

func (b *Base) Parameter(key string) any { return b.params[key] }

func (b *Base) SetParameter(key string, value any) { b.params[key] = value }

func (b *Base) String(key string) string { return toString(b.params[key]) }

func (b *Base) TestMode() bool { return toBool(b.params["testMode"]) }

func (b *Base) SetTestMode(testMode bool) { b.params["testMode"] = testMode }

func (b *Base) Currency() string { return strings.ToUpper(b.String("currency")) }

func (b *Base) SetCurrency(currency string) { b.params["currency"] = strings.ToUpper(currency) }

// Merge returns gateway parameters overlaid with per-request options.
func Merge(params, options map[string]any) map[string]any {
	out := copyParams(params)
	for k, v := range options {
		out[k] = v
	}
	return out
}

func copyParams(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}
