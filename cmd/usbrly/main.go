// Command usbrly controls a USB-RLY relay output board from the command
// line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/devantech/usbrly"
)

// relayList collects repeatable relay index flags.
type relayList []uint8

func (l *relayList) String() string {
	return fmt.Sprint([]uint8(*l))
}

func (l *relayList) Set(value string) error {
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil {
		return err
	}
	if n >= usbrly.NumRelays {
		return fmt.Errorf("relay index must be in 0..%d", usbrly.NumRelays-1)
	}
	*l = append(*l, uint8(n))
	return nil
}

func main() {
	log.SetFlags(0)
	var (
		port       = flag.String("p", "", "serial port of the relay board (required)")
		timeout    = flag.Int("t", 5, "serial communication timeout in seconds")
		allRelays  = flag.String("a", "", "set all relays to the given state: on or off")
		getStates  = flag.Bool("g", false, "get the state of the relays")
		getSerial  = flag.Bool("s", false, "get the serial number of the board")
		getVersion = flag.Bool("i", false, "get the firmware version of the board")
		debug      = flag.Bool("d", false, "log the raw serial exchanges")
	)
	var relaysOn, relaysOff relayList
	flag.Var(&relaysOn, "n", "set a relay to ON state (repeatable)")
	flag.Var(&relaysOff, "f", "set a relay to OFF state (repeatable)")
	flag.Parse()

	if *port == "" {
		fmt.Fprintln(os.Stderr, "usbrly: a serial port must be given with -p")
		flag.Usage()
		os.Exit(2)
	}
	if *allRelays != "" && *allRelays != "on" && *allRelays != "off" {
		log.Fatalf("usbrly: invalid -a value %q: must be on or off", *allRelays)
	}

	handler := usbrly.NewClientHandler(*port)
	handler.Timeout = time.Duration(*timeout) * time.Second
	if *debug {
		handler.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	if err := handler.Connect(); err != nil {
		log.Fatalf("usbrly: connect %s: %v", *port, err)
	}
	defer handler.Close()

	client := usbrly.NewClient(handler)

	if *allRelays != "" {
		if err := client.SetAll(*allRelays == "on"); err != nil {
			log.Fatalf("usbrly: set all relays: %v", err)
		}
	}
	for _, relay := range relaysOn {
		if err := client.SetState(relay, true); err != nil {
			log.Fatalf("usbrly: set relay %d on: %v", relay, err)
		}
	}
	for _, relay := range relaysOff {
		if err := client.SetState(relay, false); err != nil {
			log.Fatalf("usbrly: set relay %d off: %v", relay, err)
		}
	}

	if *getStates {
		states, err := client.GetStates()
		if err != nil {
			log.Fatalf("usbrly: get states: %v", err)
		}
		fmt.Printf("0x%.2x\n", states)
		for i := 0; i < usbrly.NumRelays; i++ {
			state := "off"
			if states&(1<<i) != 0 {
				state = "on"
			}
			fmt.Printf("%d %s\n", i, state)
		}
	}
	if *getSerial {
		serial, err := client.GetSerial()
		if err != nil {
			log.Fatalf("usbrly: get serial: %v", err)
		}
		fmt.Println(serial)
	}
	if *getVersion {
		version, err := client.GetVersion()
		if err != nil {
			log.Fatalf("usbrly: get version: %v", err)
		}
		fmt.Println(version)
	}
}
