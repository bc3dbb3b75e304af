package rocpdu

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/rocplus/go-rocplus/wire"
)

func TestTransactionHistoryRequestEncodeListVsRead(t *testing.T) {
	list := TransactionHistoryRequest{Command: ListTransactions, TransactionSegment: 1, TransactionOffset: 5}
	assert.DeepEqual(t, list.EncodeBody(), []byte{1, 1, 5, 0})

	read := TransactionHistoryRequest{Command: ReadTransaction, TransactionSegment: 1, TransactionNumber: 9, DataOffset: 2}
	assert.DeepEqual(t, read.EncodeBody(), []byte{2, 1, 9, 0, 2, 0})
}

func TestDecodeTransactionHistoryListTransactions(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(uint8(ListTransactions)).
		AppendByte(1). // NumberOfTransactions
		AppendByte(0). // ExcessTransactions
		AppendASCII("CONTRACT1", 10).
		AppendInt16(64). // PayloadSize
		AppendInt16(7).  // transaction number
		AppendUint32(1700000000).
		Bytes()

	resp, err := decodeTransactionHistory(body, nil, nil)
	assert.NilError(t, err)
	tr := resp.(TransactionHistoryResponse)
	assert.Equal(t, tr.NumberOfTransactions, uint8(1))
	assert.Equal(t, tr.Description, "CONTRACT1")
	assert.Equal(t, len(tr.Transactions), 1)
	assert.Equal(t, tr.Transactions[0].TransactionNumber, int16(7))
	assert.Assert(t, tr.Transactions[0].CreatedAt.Equal(time.Unix(1700000000, 0).UTC()))
}

func TestDecodeTransactionHistoryReadTransactionReadsFromCursorNotAbsoluteOffset(t *testing.T) {
	// message_data_size = 6: 1 flag byte + 5 bytes of value data (1 type
	// code byte + 4-byte FLOAT32).
	valuePayload := wire.NewBuilder().AppendByte(7).AppendFloat32(55.5).Bytes()
	body := wire.NewBuilder().
		AppendByte(uint8(ReadTransaction)).
		AppendByte(uint8(len(valuePayload) + 1)).
		AppendByte(0). // ExcessData
		AppendBytes(valuePayload...).
		Bytes()

	resp, err := decodeTransactionHistory(body, nil, nil)
	assert.NilError(t, err)
	tr := resp.(TransactionHistoryResponse)
	assert.Equal(t, len(tr.Values), 1)
	f, err := tr.Values[0].Float32()
	assert.NilError(t, err)
	assert.Equal(t, f, float32(55.5))
}

func TestDecodeTransactionHistoryUnrecognizedDataTypeCode(t *testing.T) {
	body := wire.NewBuilder().
		AppendByte(uint8(ReadTransaction)).
		AppendByte(2).
		AppendByte(0).
		AppendByte(255). // unrecognized data type code
		Bytes()

	_, err := decodeTransactionHistory(body, nil, nil)
	assert.ErrorContains(t, err, "unrecognized data type code")
}
