package rocpdu

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
	"github.com/rocplus/go-rocplus/tlp"
	"github.com/rocplus/go-rocplus/wire"
)

func init() {
	register(Spec{Opcode: 206, Description: "Transaction History", Decode: decodeTransactionHistory})
}

// TransactionHistoryCommand selects opcode 206's two request/response
// shapes.
type TransactionHistoryCommand uint8

const (
	ListTransactions TransactionHistoryCommand = 1
	ReadTransaction  TransactionHistoryCommand = 2
)

// TransactionHistoryRequest lists the transactions logged on a segment
// (ListTransactions) or reads one transaction's data-type/value pairs
// (ReadTransaction).
type TransactionHistoryRequest struct {
	Command            TransactionHistoryCommand
	TransactionSegment uint8
	TransactionOffset  int16 // ListTransactions only
	TransactionNumber  int16 // ReadTransaction only
	DataOffset         int16 // ReadTransaction only
}

func (TransactionHistoryRequest) Opcode() uint8 { return 206 }

func (r TransactionHistoryRequest) EncodeBody() []byte {
	b := builder().AppendByte(uint8(r.Command)).AppendByte(r.TransactionSegment)
	if r.Command == ListTransactions {
		return b.AppendInt16(r.TransactionOffset).Bytes()
	}
	return b.AppendInt16(r.TransactionNumber).AppendInt16(r.DataOffset).Bytes()
}

// TransactionRecord is one (transaction_number, creation time) pair
// returned by ListTransactions.
type TransactionRecord struct {
	TransactionNumber int16
	CreatedAt         time.Time
}

// TransactionHistoryResponse carries whichever fields its Command
// populates; the other group is left zero.
type TransactionHistoryResponse struct {
	Command TransactionHistoryCommand

	// ListTransactions fields.
	NumberOfTransactions uint8
	ExcessTransactions   bool
	Description          string
	PayloadSize          int16
	Transactions         []TransactionRecord

	// ReadTransaction fields.
	MessageDataSize uint8
	ExcessData      bool
	Values          []tlp.Value
}

func (TransactionHistoryResponse) isResponseBody() {}

func decodeTransactionHistory(body []byte, _ RequestBody, _ *tlp.Registry) (ResponseBody, error) {
	c := wire.NewCursor(body)
	command := TransactionHistoryCommand(c.TakeUint8())
	resp := TransactionHistoryResponse{Command: command}

	switch command {
	case ListTransactions:
		resp.NumberOfTransactions = c.TakeUint8()
		resp.ExcessTransactions = c.TakeUint8() != 0
		resp.Description = c.TakeASCII(10)
		resp.PayloadSize = c.TakeInt16()
		resp.Transactions = make([]TransactionRecord, 0, resp.NumberOfTransactions)
		for i := uint8(0); i < resp.NumberOfTransactions; i++ {
			resp.Transactions = append(resp.Transactions, TransactionRecord{
				TransactionNumber: c.TakeInt16(),
				CreatedAt:         c.TakeTime(),
			})
		}
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		return resp, nil
	case ReadTransaction:
		resp.MessageDataSize = c.TakeUint8()
		resp.ExcessData = c.TakeUint8() != 0
		if c.Err() != nil {
			return nil, rocerr.Wrap(rocerr.FrameTooShort, c.Err())
		}
		// message_data_size counts the excess-data flag byte too; the
		// type/value pairs occupy the remaining message_data_size - 1
		// bytes starting right after the flag. Read as a length from the
		// current cursor position, not as an absolute offset from the
		// start of the response.
		valueBytesSize := int(resp.MessageDataSize) - 1
		if valueBytesSize < 0 {
			valueBytesSize = 0
		}
		if valueBytesSize > c.Remaining() {
			valueBytesSize = c.Remaining()
		}
		valueBytes := c.TakeN(valueBytesSize)
		vc := wire.NewCursor(valueBytes)
		resp.Values = nil
		for vc.Remaining() > 0 {
			code := vc.TakeUint8()
			dt, ok := tlp.DataTypeByCode(code)
			if !ok {
				return nil, rocerr.New(rocerr.UnexpectedResponse, "transaction value has unrecognized data type code %d", code)
			}
			resp.Values = append(resp.Values, dt.Decode(vc))
			if vc.Err() != nil {
				return nil, rocerr.Wrap(rocerr.FrameTooShort, vc.Err())
			}
		}
		return resp, nil
	default:
		return nil, rocerr.New(rocerr.UnexpectedResponse, "opcode 206 returned unrecognized command %d", command)
	}
}
