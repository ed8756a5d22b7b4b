package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rethinkdb-go/rethinkdriver/reql/rqerr"
)

func TestDecodeEnvelopeSuccessAtom(t *testing.T) {
	batch, kind, err := decodeEnvelope([]byte(`{"t":1,"r":[{"id":"a"}]}`))
	require.NoError(t, err)
	assert.Equal(t, successAtom, kind)
	require.Len(t, batch.Values, 1)
	assert.JSONEq(t, `{"id":"a"}`, string(batch.Values[0]))
}

func TestDecodeEnvelopeSuccessPartialReportsKind(t *testing.T) {
	_, kind, err := decodeEnvelope([]byte(`{"t":3,"r":[1,2,3]}`))
	require.NoError(t, err)
	assert.Equal(t, successPartial, kind)
}

func TestDecodeEnvelopeRuntimeErrorBuildsServerError(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"t":18,"e":3000000,"r":["boom"],"b":[1,2]}`))
	require.Error(t, err)

	var serverErr *rqerr.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, rqerr.ServerRuntime, serverErr.Kind)
	assert.Equal(t, 3000000, serverErr.Code)
	assert.Equal(t, "boom", serverErr.Message)
	assert.Equal(t, []uint32{1, 2}, serverErr.Span)
}

func TestDecodeEnvelopeErrorWithoutEFieldDefaultsCodeToNegativeOne(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"t":18,"r":["boom"],"b":[1,2]}`))
	var serverErr *rqerr.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, -1, serverErr.Code)
}

func TestDecodeEnvelopeWaitCompleteIsProtocolError(t *testing.T) {
	_, kind, err := decodeEnvelope([]byte(`{"t":4,"r":[]}`))
	require.Error(t, err)
	assert.Equal(t, waitComplete, kind)

	var rerr *rqerr.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rqerr.UnexpectedResponse, rerr.Kind)
}

func TestDecodeEnvelopeCompileAndClientErrorsMapToDistinctKinds(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"t":17,"r":["bad query"]}`))
	var compileErr *rqerr.ServerError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, rqerr.ServerCompile, compileErr.Kind)

	_, _, err = decodeEnvelope([]byte(`{"t":16,"r":["client"]}`))
	var clientErr *rqerr.ServerError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, rqerr.ServerClient, clientErr.Kind)
}

func TestDecodeEnvelopeRejectsMissingTPrefix(t *testing.T) {
	_, _, err := decodeEnvelope([]byte(`{"r":[1]}`))
	require.Error(t, err)
}

func TestReadSizePrefixedWalksConcatenatedSubRecords(t *testing.T) {
	var buf []byte
	buf = appendSizePrefixed(buf, []byte(`{"t":1,"r":[1]}`))
	buf = appendSizePrefixed(buf, []byte(`{"t":1,"r":[2]}`))

	record1, next, err := readSizePrefixed(buf, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":1,"r":[1]}`, string(record1))

	record2, next2, err := readSizePrefixed(buf, next)
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":1,"r":[2]}`, string(record2))
	assert.Equal(t, len(buf), next2)
}

func TestReadSizePrefixedRejectsTruncatedBody(t *testing.T) {
	var buf []byte
	buf = appendSizePrefixed(buf, []byte(`{"t":1,"r":[1]}`))
	truncated := buf[:len(buf)-1]

	_, _, err := readSizePrefixed(truncated, 0)
	require.Error(t, err)
}

func appendSizePrefixed(buf []byte, body []byte) []byte {
	offset := len(buf)
	buf = append(buf, make([]byte, 4+len(body))...)
	putUint32BE(buf[offset:offset+4], uint32(len(body)))
	copy(buf[offset+4:], body)
	return buf
}

func putUint32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
