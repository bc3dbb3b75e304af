// Command rocmon is a terminal monitor for a single ROC Plus point: it
// opens a connection, streams one TLP at the requested interval, and
// prints each reading until the operator quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"github.com/rocplus/go-rocplus/rocclient"
	"github.com/rocplus/go-rocplus/tlp"
)

func main() {
	host := flag.String("host", "", "device host/IP")
	port := flag.Uint("port", 4000, "device TCP port")
	rocAddr := flag.Uint("roc-address", 1, "roc_address")
	rocGroup := flag.Uint("roc-group", 0, "roc_group")
	pointType := flag.Uint("point-type", uint(tlp.AnalogInputPointTypeNumber), "point type number")
	logicalNumber := flag.Uint("logical-number", 0, "logical number")
	parameter := flag.Uint("parameter", uint(tlp.ParamEUValue), "parameter number")
	interval := flag.Duration("interval", 2*time.Second, "poll interval")
	flag.Parse()

	if *host == "" {
		fmt.Fprintln(os.Stderr, "rocmon: -host is required")
		os.Exit(2)
	}

	cfg := rocclient.DefaultConfig(*host, uint16(*port), uint8(*rocAddr), uint8(*rocGroup))
	client, err := rocclient.New(cfg, tlp.DefaultRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "rocmon: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := client.Open(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rocmon: open failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	fmt.Printf("rocmon: streaming %d.%d.%d from %s every %s (press q to quit, Ctrl-C to exit)\n",
		*pointType, *logicalNumber, *parameter, *host, *interval)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		go watchForQuit(cancel)
	}

	values, errs := client.StreamTLP(ctx, *interval, uint8(*pointType), uint8(*logicalNumber), uint8(*parameter))
	for {
		select {
		case v, ok := <-values:
			if !ok {
				return
			}
			printReading(v)
		case err := <-errs:
			fmt.Fprintf(os.Stderr, "rocmon: read failed: %v\n", err)
			return
		case <-ctx.Done():
			return
		}
	}
}

// watchForQuit lets the operator stop the monitor with 'q' in addition
// to Ctrl-C, without requiring raw-mode line discipline changes beyond
// what eiannone/keyboard already manages internally.
func watchForQuit(cancel context.CancelFunc) {
	if err := keyboard.Open(); err != nil {
		return
	}
	defer keyboard.Close()
	for {
		ch, key, err := keyboard.GetSingleKey()
		if err != nil {
			return
		}
		if key == keyboard.KeyCtrlC || ch == 'q' {
			cancel()
			return
		}
	}
}

func printReading(v tlp.TLPValue) {
	tag := v.TagName
	if tag == "" {
		tag = "-"
	}
	fmt.Printf("%s  %d.%d.%d  %-10s  %s\n",
		v.Timestamp.Format(time.RFC3339), v.PointType.PointTypeNumber, v.LogicalNumber, v.Parameter.ParameterNumber,
		tag, v.Value.String())
}
