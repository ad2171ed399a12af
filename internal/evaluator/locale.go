package evaluator

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/minilang/internal/engerr"
	"github.com/cwbudde/minilang/internal/registry"
	"github.com/cwbudde/minilang/internal/value"
)

// registerLocale installs string builtins beyond the fixed `==`/`<` operator
// set: locale-aware collation, for scripts that sort or compare names the
// way a human reader of a given language would rather than by raw byte
// order, and Unicode normalization, so two visually identical strings
// built from different combining-character sequences compare equal.
//
// Grounded on golang.org/x/text's collate/language packages — the same
// stack the example pack's CLI tooling pulls in for locale-sensitive
// output — wired here as `collate_compare(a, b, locale)` and
// `normalize_nfc(s)` native functions.
func registerLocale(r *registry.Registry, names *value.TypeNames) {
	r.RegisterNative("collate_compare",
		[]value.TypeToken{value.TokenOf[value.Str](), value.TokenOf[value.Str](), value.TokenOf[value.Str]()},
		names,
		&registry.NativeFn{
			Arity: 3,
			Fn: func(args []*value.Value) (value.Value, error) {
				a, _ := value.Downcast[value.Str](*args[0])
				b, _ := value.Downcast[value.Str](*args[1])
				localeTag, _ := value.Downcast[value.Str](*args[2])

				tag, err := language.Parse(localeTag)
				if err != nil {
					return value.Value{}, engerr.New(engerr.FunctionCallNotSupported, "collate_compare: unknown locale %q", localeTag)
				}
				col := collate.New(tag)
				return value.New(value.Int(col.CompareString(a, b))), nil
			},
		})

	r.RegisterNative("normalize_nfc", []value.TypeToken{value.TokenOf[value.Str]()}, names, &registry.NativeFn{
		Arity: 1,
		Fn: func(args []*value.Value) (value.Value, error) {
			s, _ := value.Downcast[value.Str](*args[0])
			return value.New(value.Str(norm.NFC.String(s))), nil
		},
	})
}
