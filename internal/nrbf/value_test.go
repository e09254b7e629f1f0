package nrbf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueMarshalJSON_PreservesMemberOrder(t *testing.T) {
	v := &Value{Kind: KindClassInstance, Class: &ClassInstance{
		Name: "Pair",
		Members: []Member{
			{Name: "z", Value: intValue(WidthI32, 1, 0)},
			{Name: "a", Value: intValue(WidthI32, 2, 0)},
		},
	}}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"z":1,"a":2}`, string(out))
	require.Equal(t, `{"z":1,"a":2}`, string(out)) // exact byte order, not just set equality
}

func TestValueMarshalJSON_Scalars(t *testing.T) {
	cases := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", nullValue(), "null"},
		{"bool", boolValue(true), "true"},
		{"string", stringValue("hi"), `"hi"`},
		{"uint", intValue(WidthU32, 0, 7), "7"},
		{"int", intValue(WidthI32, -7, 0), "-7"},
		{"float32", floatValue32(1.5), "1.5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := json.Marshal(c.v)
			require.NoError(t, err)
			require.Equal(t, c.want, string(out))
		})
	}
}
