package rocclient

import (
	"context"
	"time"

	"github.com/rocplus/go-rocplus/rocpdu"
	"github.com/rocplus/go-rocplus/tlp"
)

// ReadTLP reads a single (point_type, logical_number, parameter_number)
// via opcode 180, enriching the result with a tag name from the cached
// I/O snapshot when one is available.
func (c *Client) ReadTLP(ctx context.Context, pointType, logicalNumber, parameter uint8) (tlp.TLPValue, error) {
	values, err := c.ReadTLPs(ctx, tlp.FromNumbers(c.reg, pointType, logicalNumber, parameter))
	if err != nil {
		return tlp.TLPValue{}, err
	}
	return values[0], nil
}

// ReadTLPs reads an arbitrary set of (possibly unrelated) TLPs in one
// opcode 180 exchange, enriching tag names from the cached I/O snapshot.
func (c *Client) ReadTLPs(ctx context.Context, instances ...tlp.TLPInstance) ([]tlp.TLPValue, error) {
	resp, err := c.Exchange(ctx, rocpdu.ParameterRequest{TLPs: instances})
	if err != nil {
		return nil, err
	}
	values := resp.(rocpdu.ParameterResponse).Values
	c.enrichTags(values)
	return values, nil
}

// ReadContiguousTLPs reads count contiguous parameters starting at
// startingParameter on one (point_type, logical_number) instance via
// opcode 167.
func (c *Client) ReadContiguousTLPs(ctx context.Context, pointType, logicalNumber, startingParameter, count uint8) ([]tlp.TLPValue, error) {
	resp, err := c.Exchange(ctx, rocpdu.SinglePointParameterRequest{
		PointType:               pointType,
		LogicalNumber:           logicalNumber,
		NumberOfParameters:      count,
		StartingParameterNumber: startingParameter,
	})
	if err != nil {
		return nil, err
	}
	values := resp.(rocpdu.SinglePointParameterResponse).Values
	c.enrichTags(values)
	return values, nil
}

// enrichTags fills TagName on each value from the cached I/O snapshot,
// when one is defined, leaving values whose point/logical pair isn't a
// known I/O location untouched.
func (c *Client) enrichTags(values []tlp.TLPValue) {
	c.snapshot.mu.RLock()
	io := c.snapshot.io
	c.snapshot.mu.RUnlock()
	if io == nil {
		return
	}
	for i := range values {
		for _, p := range io.Points {
			if p.PointType == values[i].PointType.PointTypeNumber && p.LogicalNumber == values[i].LogicalNumber {
				values[i].TagName = p.TagName
				break
			}
		}
	}
}

// StreamTLP lazily re-reads a single TLP on interval until ctx is
// cancelled, delivering each reading on the returned channel. The channel
// is closed without error on cancellation. A read error is sent on errs and ends the stream.
func (c *Client) StreamTLP(ctx context.Context, interval time.Duration, pointType, logicalNumber, parameter uint8) (<-chan tlp.TLPValue, <-chan error) {
	values := make(chan tlp.TLPValue)
	errs := make(chan error, 1)
	go func() {
		defer close(values)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			v, err := c.ReadTLP(ctx, pointType, logicalNumber, parameter)
			if err != nil {
				select {
				case errs <- err:
				default:
				}
				return
			}
			select {
			case values <- v:
			case <-ctx.Done():
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return values, errs
}
