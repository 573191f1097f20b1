package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport_NormalizesToUTC(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 1, 1, 1, 0, 0, 0, berlin)

	r := NewReport(ts)

	assert.Equal(t, time.UTC, r.Timestamp.Location())
	assert.True(t, r.Timestamp.Equal(ts))
	assert.Nil(t, r.Hosts, "no hosts given must stay absent")
}

func TestNewReport_WithHosts(t *testing.T) {
	r := NewReport(time.Now(), Host{Hostname: "build-01"}, Host{Hostname: "build-02"})

	require.Len(t, r.Hosts, 2)
	assert.Equal(t, "build-02", r.Hosts[1].Hostname)
}

func TestReport_JSONMarshaling(t *testing.T) {
	r := NewReport(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Host{
		Hostname: "build-01",
		Cpus: []Cpu{{
			Architecture: Ptr("x86_64"),
			Cores:        Ptr(uint32(8)),
		}},
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "2024-01-01T00:00:00Z", doc["timestamp"])

	hosts := doc["hosts"].([]interface{})
	host := hosts[0].(map[string]interface{})
	assert.Equal(t, "build-01", host["hostname"])

	// Absent values are kept as explicit nulls
	assert.Contains(t, host, "memory")
	assert.Nil(t, host["memory"])
	assert.Contains(t, host, "os")
	assert.Nil(t, host["os"])

	cpu := host["cpus"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(8), cpu["cores"])
	assert.Nil(t, cpu["threads"])

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Hosts, 1)
	assert.Nil(t, decoded.Hosts[0].Memory)
	assert.Equal(t, uint32(8), *decoded.Hosts[0].Cpus[0].Cores)
	assert.Nil(t, decoded.Hosts[0].Cpus[0].Model)
}

func TestHost_EmptyListDiffersFromAbsent(t *testing.T) {
	absent, err := json.Marshal(Host{Hostname: "a"})
	require.NoError(t, err)
	empty, err := json.Marshal(Host{Hostname: "a", Cpus: []Cpu{}})
	require.NoError(t, err)

	assert.Contains(t, string(absent), `"cpus":null`)
	assert.Contains(t, string(empty), `"cpus":[]`)
}

func TestFuzzer_HasNoVariants(t *testing.T) {
	assert.Empty(t, Fuzzers())
	assert.Empty(t, Fuzzer{}.EnumValues())

	for _, name := range []string{"", "afl++", "libfuzzer", "honggfuzz"} {
		_, err := ParseFuzzer(name)
		assert.ErrorIs(t, err, ErrUnknownFuzzer, "name %q", name)
	}

	assert.ErrorIs(t, Fuzzer{}.Validate(), ErrUnknownFuzzer)
}

func TestFuzzer_CannotBeSerialized(t *testing.T) {
	_, err := json.Marshal(struct {
		Engine Fuzzer `json:"engine"`
	}{})
	assert.Error(t, err)

	var f Fuzzer
	err = json.Unmarshal([]byte(`"afl++"`), &f)
	assert.ErrorIs(t, err, ErrUnknownFuzzer)
}

func TestSchemaDescription_CoversEveryField(t *testing.T) {
	models := []Described{Report{}, Host{}, Cpu{}, Memory{}, Fuzzer{}, Log{}, Entry{}}

	for _, m := range models {
		typ := reflect.TypeOf(m)
		t.Run(typ.Name(), func(t *testing.T) {
			desc := m.SchemaDescription()
			assert.NotEmpty(t, desc.Summary)

			var names []string
			for i := 0; i < typ.NumField(); i++ {
				field := typ.Field(i)
				if !field.IsExported() {
					continue
				}
				name := strings.Split(field.Tag.Get("json"), ",")[0]
				names = append(names, name)
				assert.NotEmpty(t, desc.Fields[name], "missing description for %s", name)
			}
			assert.Len(t, desc.Fields, len(names))
		})
	}
}
