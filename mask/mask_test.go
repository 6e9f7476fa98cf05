package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rise-and-shine/mediator/mask"
)

func keysAndValues(om *orderedmap.OrderedMap[string, any]) ([]string, []any) {
	var keys []string
	var values []any
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
		values = append(values, pair.Value)
	}
	return keys, values
}

type marker struct{}

type Marker struct{}

type address struct {
	City string `json:"city"`
	Zip  string `json:"zip" mask:"true"`
}

type registerUser struct {
	Marker

	Email    string   `json:"email"`
	Password string   `json:"password" mask:"true"`
	PIN      int      `json:"pin" mask:"true"`
	Ignored  string   `json:"-"`
	Nickname string   `yaml:"nick"`
	Address  *address `json:"address"`
	Tags     []string `json:"tags" mask:"true"`

	internal marker
}

func TestStructToOrdMap(t *testing.T) {
	msg := registerUser{
		Email:    "a@b.c",
		Password: "secret",
		Nickname: "neo",
		Address:  &address{City: "Tashkent", Zip: "100000"},
	}

	om := mask.StructToOrdMap(msg)
	require.NotNil(t, om)

	keys, values := keysAndValues(om)
	assert.Equal(t,
		[]string{"email", "password", "pin", "nick", "address.city", "address.zip", "tags"},
		keys,
	)
	assert.Equal(t,
		[]any{"a@b.c", "***masked***", 0, "neo", "Tashkent", "***masked***", nil},
		values,
	)
}

func TestStructToOrdMap_Pointer(t *testing.T) {
	om := mask.StructToOrdMap(&registerUser{PIN: 1234})

	v, ok := om.Get("pin")
	require.True(t, ok)
	assert.Equal(t, "***masked-int***", v)
}

func TestStructToOrdMap_NonStruct(t *testing.T) {
	assert.Nil(t, mask.StructToOrdMap(nil))

	om := mask.StructToOrdMap(7)
	v, ok := om.Get("")
	require.True(t, ok)
	assert.Equal(t, 7, v)
}
