package rocclient

import (
	"time"

	"github.com/rocplus/go-rocplus/rocerr"
)

// ConnectTimeoutMin..CloseTimeoutMax define this driver's timeout range:
// a zero value takes the documented default, an out-of-range value is
// rejected outright.
const (
	ConnectTimeoutMin = 1 * time.Millisecond
	ConnectTimeoutMax = 5 * time.Minute

	ReadTimeoutMin = 1 * time.Millisecond
	ReadTimeoutMax = 5 * time.Minute

	WriteTimeoutMin = 1 * time.Millisecond
	WriteTimeoutMax = 5 * time.Minute

	CloseTimeoutMin = 1 * time.Millisecond
	CloseTimeoutMax = 5 * time.Minute
)

// Config holds one device's connection parameters. The zero value for any timeout field takes
// its documented default via Valid.
type Config struct {
	Host string
	Port uint16

	RocAddress  uint8
	RocGroup    uint8
	HostAddress uint8 // default 1
	HostGroup   uint8 // default 0

	ConnectTimeout time.Duration // default 10s
	ReadTimeout    time.Duration // default 15s
	WriteTimeout   time.Duration // default 1s
	CloseTimeout   time.Duration // default 1s

	// hostAddressSet/hostGroupSet distinguish "caller explicitly set 0"
	// from "caller left it unset", since HostAddress's default (1) is
	// not Go's zero value.
	hostAddressSet bool
	hostGroupSet   bool
}

// SetHostAddress records an explicit host_address, including 0, so Valid
// does not overwrite it with the default.
func (c *Config) SetHostAddress(v uint8) {
	c.HostAddress = v
	c.hostAddressSet = true
}

// SetHostGroup records an explicit host_group, including 0 (host_group's
// own default), so Valid's bookkeeping stays consistent with
// SetHostAddress.
func (c *Config) SetHostGroup(v uint8) {
	c.HostGroup = v
	c.hostGroupSet = true
}

// Valid applies documented defaults to unset fields and rejects
// out-of-range timeouts.
func (c *Config) Valid() error {
	if c == nil {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: nil config")
	}
	if c.Host == "" {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: host is required")
	}
	if !c.hostAddressSet && c.HostAddress == 0 {
		c.HostAddress = 1
	}

	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	} else if c.ConnectTimeout < ConnectTimeoutMin || c.ConnectTimeout > ConnectTimeoutMax {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: ConnectTimeout out of range")
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	} else if c.ReadTimeout < ReadTimeoutMin || c.ReadTimeout > ReadTimeoutMax {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: ReadTimeout out of range")
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 1 * time.Second
	} else if c.WriteTimeout < WriteTimeoutMin || c.WriteTimeout > WriteTimeoutMax {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: WriteTimeout out of range")
	}
	if c.CloseTimeout == 0 {
		c.CloseTimeout = 1 * time.Second
	} else if c.CloseTimeout < CloseTimeoutMin || c.CloseTimeout > CloseTimeoutMax {
		return rocerr.New(rocerr.ConfigInvalid, "rocclient: CloseTimeout out of range")
	}
	return nil
}

// DefaultConfig returns a Config with every default applied save Host.
func DefaultConfig(host string, port uint16, rocAddress, rocGroup uint8) Config {
	return Config{
		Host:           host,
		Port:           port,
		RocAddress:     rocAddress,
		RocGroup:       rocGroup,
		HostAddress:    1,
		HostGroup:      0,
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   1 * time.Second,
		CloseTimeout:   1 * time.Second,
	}
}
