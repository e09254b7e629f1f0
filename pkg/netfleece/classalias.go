package netfleece

// ApplyClassAliases returns a copy of v with every ClassInstance.Name
// replaced by its configured alias, leaving v itself untouched. Aliased
// names are for display only: LibraryName and the object graph's
// reference structure are unaffected, so applying aliases before or after
// reference resolution makes no difference to the result's shape.
//
// The alias table is config-driven (Config.ClassAliases), so callers decide
// which verbose, assembly-qualified .NET type names are noisy enough to
// shorten.
func ApplyClassAliases(v *Value, aliases map[string]string) *Value {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindClassInstance:
		members := make([]Member, len(v.Class.Members))
		for i, m := range v.Class.Members {
			members[i] = Member{Name: m.Name, Value: ApplyClassAliases(m.Value, aliases)}
		}
		name := v.Class.Name
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		cp := *v.Class
		cp.Name = name
		cp.Members = members
		return &Value{Kind: KindClassInstance, Class: &cp}
	case KindArray:
		elems := make([]*Value, len(v.Array.Elements))
		for i, el := range v.Array.Elements {
			elems[i] = ApplyClassAliases(el, aliases)
		}
		cp := *v.Array
		cp.Elements = elems
		return &Value{Kind: KindArray, Array: &cp}
	default:
		cp := *v
		return &cp
	}
}
