package builtins

import "github.com/cwbudde/ecmalite/internal/value"

// ctorStatics maps a constructor's display name to its static-property
// resolver, consulted when methodResolver sees a *Native receiver (i.e. a
// MemberDot/MemberBracket on one of the constructor globals themselves,
// like Array.isArray or Math — Math is a plain Object, not a Native, so it
// never reaches this path; its members are already own properties).
var ctorStatics = map[string]func(string) (value.Value, bool){
	"Array":  arrayStatic,
	"Object": objectStatic,
	"String": stringStatic,
	"Number": numberStatic,
	"Date":   dateStatic,
}

// Resolver is installed as the Interpreter's MethodResolver: the fallback a
// property get consults once own-property lookup on the receiver itself has
// missed.
func Resolver(recv value.Value, name string) (value.Value, bool) {
	switch r := recv.(type) {
	case *value.Array:
		return arrayMethod(r, name)
	case value.Str:
		return stringMethod(r, name)
	case value.Number:
		return numberMethod(r, name)
	case *value.Object:
		return objectMethod(r, name)
	case *value.Date:
		return dateMethod(r, name)
	case *value.Regex:
		return regexMethod(r, name)
	case *Native:
		if statics, ok := ctorStatics[r.Name()]; ok {
			return statics(name)
		}
	}
	return nil, false
}
