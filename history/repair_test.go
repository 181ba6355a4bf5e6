package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairConcatenatedObjects(t *testing.T) {
	input := []byte(`{"FileName":"a.png"}
{"FileName":"b.mp4"}
{"FileName":"c.wav"}`)

	repaired, err := Repair(input)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "a.png", entries[0]["FileName"])
	assert.Equal(t, "c.wav", entries[2]["FileName"])
}

func TestRepairSingleObject(t *testing.T) {
	repaired, err := Repair([]byte(`{"FileName":"a.mp4"}`))
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &entries))
	assert.Len(t, entries, 1)
}

func TestRepairEmptyInput(t *testing.T) {
	repaired, err := Repair(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(repaired))

	repaired, err = Repair([]byte("  \n\t "))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(repaired))
}

func TestRepairBracesInsideStrings(t *testing.T) {
	// A naive "}{"-replacement would split inside these values.
	input := []byte(`{"FileName":"we{ird}.mp4","Note":"has } and { inside"}{"FileName":"next.wav"}`)

	repaired, err := Repair(input)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "we{ird}.mp4", entries[0]["FileName"])
	assert.Equal(t, "has } and { inside", entries[0]["Note"])
	assert.Equal(t, "next.wav", entries[1]["FileName"])
}

func TestRepairEscapedQuotesAndBackslashes(t *testing.T) {
	// Windows paths end in a backslash-heavy mess; the escape tracking must
	// not lose string state on \" or \\.
	input := []byte(`{"FilePath":"C:\\clips\\a \"final\".mp4"}{"FilePath":"C:\\clips\\b.mp4"}`)

	repaired, err := Repair(input)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, `C:\clips\a "final".mp4`, entries[0]["FilePath"])
}

func TestRepairNestedObjects(t *testing.T) {
	input := []byte(`{"FileName":"a.mp4","Meta":{"inner":{"x":1}}}{"FileName":"b.mp4"}`)

	repaired, err := Repair(input)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &entries))
	require.Len(t, entries, 2)
}

func TestRepairTruncatedTail(t *testing.T) {
	// A write in progress: the final object is incomplete. The whole repair
	// fails; the caller retries next poll.
	_, err := Repair([]byte(`{"FileName":"a.mp4"}{"FileName":"b.m`))
	assert.Error(t, err)
}

func TestRepairGarbageBetweenObjects(t *testing.T) {
	_, err := Repair([]byte(`{"FileName":"a.mp4"}, {"FileName":"b.mp4"}`))
	assert.Error(t, err)
}

// Repairing then parsing must agree with parsing each object individually.
func TestRepairMatchesHandSplit(t *testing.T) {
	objects := []string{
		`{"FileName":"a.png","FilePath":"C:\\x\\a.png","DateTime":"2024-01-01T00:00:01Z"}`,
		`{"FileName":"b{}.mp4","FilePath":"C:\\x\\b{}.mp4","DateTime":"2024-01-01T00:00:02+02:00"}`,
		`{"FileName":"c.wav","FilePath":"C:\\x\\c.wav","DateTime":"2024-01-01T00:00:03","URL":"https://x/c"}`,
	}

	var concatenated []byte
	var want []map[string]interface{}
	for _, obj := range objects {
		concatenated = append(concatenated, []byte(obj)...)
		concatenated = append(concatenated, '\n')

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(obj), &m))
		want = append(want, m)
	}

	repaired, err := Repair(concatenated)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(repaired, &got))
	assert.Equal(t, want, got)
}
