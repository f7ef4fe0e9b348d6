// cmd/octolokctl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/tamzrod/octolok/internal/config"
	"github.com/tamzrod/octolok/internal/console"
	"github.com/tamzrod/octolok/internal/interlock"
	"github.com/tamzrod/octolok/internal/transport"
)

const sessionKey = "$session"

var (
	portPath = flag.String("port", "/dev/ttyUSB0", "Serial port of the controller.")
	baudRate = flag.Int("baud", config.DefaultBaudRate, "Baud rate.")
	timeout  = flag.Duration("timeout", console.DefaultReplyTimeout, "Reply timeout.")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port, err := transport.OpenSerial(ctx, transport.SerialConfig{
		Address:  *portPath,
		BaudRate: *baudRate,
		DataBits: config.DefaultDataBits,
		StopBits: config.DefaultStopBits,
		Parity:   config.DefaultParity,
		Timeout:  time.Duration(config.DefaultTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("open %s failed: %v", *portPath, err)
	}
	defer port.Close()

	sess := console.NewSession(transport.NewLine(port))
	sess.Timeout = *timeout

	shell := ishell.New()
	shell.Set(sessionKey, sess)
	shell.SetPrompt(*portPath + " > ")
	sess.OnEvent = func(line string) {
		shell.Println("event: " + line)
	}

	for _, cmd := range commands {
		shell.AddCmd(cmd)
	}

	if args := flag.Args(); len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	shell.Run()
}

func sessionFrom(c *ishell.Context) *console.Session {
	return c.Get(sessionKey).(*console.Session)
}

// ask sends one command line and prints the decoded reply.
func ask(line string) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		reply, err := sessionFrom(c).Ask(line)
		if err != nil {
			if line == interlock.LineDisable && errors.Is(err, console.ErrNoReply) {
				c.Err(fmt.Errorf("no reply: the disable pulse did not open the interlock"))
				return
			}
			c.Err(err)
			return
		}
		show(c, reply)
	}
}

func show(c *ishell.Context, line string) {
	r, err := console.Decode(line)
	if err != nil {
		c.Println(line)
		return
	}
	var b strings.Builder
	if err := r.Render(&b); err != nil {
		c.Err(err)
		return
	}
	c.Print(b.String())
}

var commands = []*ishell.Cmd{
	{
		Name: "reset",
		Help: "arm the interlock (RESET?)",
		Func: ask(interlock.LineReset),
	},
	{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "per-channel enable and input state (STATUS?)",
		Func:    ask(interlock.LineStatus),
	},
	{
		Name:    "faults",
		Aliases: []string{"fr"},
		Help:    "latched fault register (FAULT_REG?)",
		Func:    ask(interlock.LineFaultRegister),
	},
	{
		Name: "disable",
		Help: "open the interlock (DISABLE?)",
		Func: ask(interlock.LineDisable),
	},
	{
		Name: "model",
		Help: "controller identity (RELIALOK?)",
		Func: ask(interlock.LineModel),
	},
	{
		Name: "watch",
		Help: "[SECONDS] print event lines until interrupted or the time is up",
		Func: func(c *ishell.Context) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if len(c.Args) > 0 {
				secs, err := strconv.Atoi(c.Args[0])
				if err != nil || secs <= 0 {
					c.Err(fmt.Errorf("bad duration %q", c.Args[0]))
					return
				}
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
				defer cancel()
			}

			if err := sessionFrom(c).Watch(ctx, func(line string) { show(c, line) }); err != nil {
				c.Err(err)
			}
		},
	},
}
