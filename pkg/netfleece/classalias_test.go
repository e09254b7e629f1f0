package netfleece

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyClassAliases(t *testing.T) {
	v := &Value{Kind: KindClassInstance, Class: &ClassInstance{
		Name: "System.Collections.Generic.List`1[[System.String]]",
		Members: []Member{
			{Name: "Item", Value: &Value{Kind: KindClassInstance, Class: &ClassInstance{Name: "System.String"}}},
		},
	}}
	aliases := map[string]string{
		"System.Collections.Generic.List`1[[System.String]]": "List<String>",
		"System.String": "String",
	}
	out := ApplyClassAliases(v, aliases)
	require.Equal(t, "List<String>", out.Class.Name)
	require.Equal(t, "String", out.Class.Members[0].Value.Class.Name)
	require.Equal(t, "System.Collections.Generic.List`1[[System.String]]", v.Class.Name, "original left untouched")
}
